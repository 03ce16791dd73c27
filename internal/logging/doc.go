// Package logging builds the process-wide slog.Logger from the configured
// level and format.
package logging
