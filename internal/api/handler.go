package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/readingtime/readingtime/internal/store"
	"github.com/readingtime/readingtime/pkg/field"
	"github.com/readingtime/readingtime/pkg/types"
)

// ErrUnknownLocale is returned by an Overrider for a locale it does not edit.
var ErrUnknownLocale = errors.New("api: unknown locale")

// Overrider applies manual values to a locale's reading-time field.
type Overrider interface {
	Submit(locale, value string) (types.Result, error)
}

// Handler is the HTTP handler for the /api/v1/* endpoints and /metrics.
type Handler struct {
	store     *store.Store
	overrider Overrider
	cfg       func() types.Config
	mux       *http.ServeMux
}

// Option configures a Handler.
type Option func(*Handler)

// WithOverrider enables PUT /api/v1/results/{locale}.
func WithOverrider(o Overrider) Option { return func(h *Handler) { h.overrider = o } }

// WithMetrics serves m at /metrics.
func WithMetrics(m http.Handler) Option {
	return func(h *Handler) { h.mux.Handle("/metrics", m) }
}

// WithConfig sets the source of the installation parameters reported by
// /api/v1/config. cfg is called on every request.
func WithConfig(cfg func() types.Config) Option { return func(h *Handler) { h.cfg = cfg } }

// New creates a Handler reading from st and registers all routes.
func New(st *store.Store, opts ...Option) http.Handler {
	h := &Handler{store: st, cfg: types.DefaultConfig, mux: http.NewServeMux()}
	for _, opt := range opts {
		opt(h)
	}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/config", h.config)
	h.mux.HandleFunc("/api/v1/results", h.listResults)
	h.mux.HandleFunc("/api/v1/results/", h.result) // subtree, extracts {locale}

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	entries := h.store.List()
	resp := HealthResponse{Status: "ok", LocaleCount: len(entries)}
	for _, e := range entries {
		if e.Result.Overridden {
			resp.Overridden++
		}
	}
	jsonResp(w, http.StatusOK, resp)
}

// config returns GET /api/v1/config, the installation parameters in use.
func (h *Handler) config(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.cfg())
}

// listResults returns GET /api/v1/results, one row per stored locale.
func (h *Handler) listResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, BuildResults(h.store))
}

// result serves GET and PUT /api/v1/results/{locale}.
func (h *Handler) result(w http.ResponseWriter, r *http.Request) {
	locale := strings.TrimPrefix(r.URL.Path, "/api/v1/results/")
	if locale == "" {
		h.listResults(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		e, ok := h.store.Get(locale)
		if !ok {
			jsonErr(w, http.StatusNotFound, "locale not found")
			return
		}
		jsonResp(w, http.StatusOK, toRow(e))

	case http.MethodPut:
		h.override(w, r, locale)

	default:
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) override(w http.ResponseWriter, r *http.Request, locale string) {
	if h.overrider == nil {
		jsonErr(w, http.StatusMethodNotAllowed, "overrides are not served by this host")
		return
	}
	var req OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.overrider.Submit(locale, req.Minutes)
	switch {
	case err == nil:
	case errors.Is(err, types.ErrValidation):
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, types.ErrOverrideDisabled):
		jsonErr(w, http.StatusForbidden, err.Error())
		return
	case errors.Is(err, ErrUnknownLocale):
		jsonErr(w, http.StatusNotFound, "locale not found")
		return
	case errors.Is(err, field.ErrClosed):
		jsonErr(w, http.StatusServiceUnavailable, err.Error())
		return
	default:
		jsonErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	if e, ok := h.store.Get(locale); ok {
		jsonResp(w, http.StatusOK, toRow(e))
		return
	}
	jsonResp(w, http.StatusOK, ResultRow{
		Locale:  locale,
		Summary: res.Summary(),
		Locked:  res.Overridden,
		Result:  res,
	})
}

// --- helpers ----------------------------------------------------------------

// BuildResults assembles the sidebar payload from the store.
func BuildResults(st *store.Store) ResultsResponse {
	entries := st.List()
	rows := make([]ResultRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, toRow(e))
	}
	return ResultsResponse{
		Localized:   len(rows) > 1,
		Results:     rows,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func toRow(e store.Entry) ResultRow {
	return ResultRow{
		Locale:    e.Locale,
		Summary:   e.Result.Summary(),
		Locked:    e.Result.Overridden,
		Result:    e.Result,
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
