// Package metrics exposes reading-time activity in the Prometheus text
// format.
//
// Registry implements field.Recorder: every controller event (scheduled,
// recomputed, suppressed, overridden, reset, rejected, ignored) increments
// readingtime_events_total{kind,locale}. SetResult keeps per-locale gauges
// of the current value. Families are built directly as client_model
// MetricFamily values and encoded with prometheus/common/expfmt.
package metrics
