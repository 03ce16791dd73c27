package api

import "github.com/readingtime/readingtime/pkg/types"

// ResultRow is one locale's reading time as shown in the entry sidebar.
type ResultRow struct {
	Locale string `json:"locale"`

	// Summary is the display text, e.g. "0.5 minutes, 1 second, 5 words,
	// 2 assets, 1 entry".
	Summary string `json:"summary"`

	// Locked is true when the value was entered manually.
	Locked bool `json:"locked"`

	Result    types.Result `json:"result"`
	UpdatedAt string       `json:"updated_at"`
}

// ResultsResponse is the payload for GET /api/v1/results and the WebSocket
// broadcast.
type ResultsResponse struct {
	// Localized is true when more than one locale is shown, in which case
	// each row is labelled with its locale.
	Localized   bool        `json:"localized"`
	Results     []ResultRow `json:"results"`
	GeneratedAt string      `json:"generated_at"`
}

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status      string `json:"status"`
	LocaleCount int    `json:"locale_count"`
	Overridden  int    `json:"overridden_count"`
}

// OverrideRequest is the body of PUT /api/v1/results/{locale}. An empty
// Minutes resets the locale to its computed value.
type OverrideRequest struct {
	Minutes string `json:"minutes"`
}

type errorResponse struct {
	Error string `json:"error"`
}
