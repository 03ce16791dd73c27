// Package field drives a reading-time field: it listens to the designated
// source field in every locale, recomputes the reading time after edits in
// the active locale settle, and runs the manual override flow.
//
// The host is reached only through the interfaces in host.go:
//   - Entry / SourceField: read content and subscribe to its changes
//   - ResultField: read and write the stored reading time
//   - Prompter: ask the user for an override value
//
// New resolves the source field and subscribes to it; Close releases every
// subscription and cancels any pending recomputation, so nothing is written
// after teardown. The current value is swapped atomically and never mutated
// in place.
package field
