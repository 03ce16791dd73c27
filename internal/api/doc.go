// Package api implements the HTTP REST API of the reading-time host.
//
// New(store, opts...) returns an http.Handler that serves:
//
//	GET /api/v1/health            status, locale count, overridden count
//	GET /api/v1/config            installation parameters in use
//	GET /api/v1/results           sidebar rows for every locale
//	GET /api/v1/results/{locale}  one row; 404 if the locale has no value
//	PUT /api/v1/results/{locale}  {"minutes":"3.5"} overrides, "" resets
//	GET /metrics                  Prometheus exposition (WithMetrics)
//
// All JSON endpoints respond with Content-Type: application/json and return
// 405 for unsupported methods. Override errors map to 400 (invalid value),
// 403 (overrides disabled) and 404 (unknown locale).
package api
