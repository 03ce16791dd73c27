// Package types defines the value types shared by every reading-time
// component: the Result written to the host field, the per-installation
// Config, and the error taxonomy surfaced to callers.
//
// Result is a value type. Components never mutate a Result they have handed
// out; a new value replaces the old one wholesale.
package types
