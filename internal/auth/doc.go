// Package auth provides the HTTP authentication middleware of the
// reading-time host.
//
// APIKey(mode, header, key, next) guards state-changing requests, such as
// PUT /api/v1/results/{locale}, with a shared API key. When mode != "apikey"
// or key == "", all requests pass through, which suits local use with auth
// disabled. A missing or incorrect key returns 401 with a JSON error body.
package auth
