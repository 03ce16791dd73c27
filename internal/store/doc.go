// Package store holds the reading-time results of one entry, keyed by
// locale, with optional bbolt persistence.
//
// Store is the thread-safe in-memory table. Put writes through a Persister
// (Bolt) before updating memory and then notifies subscribers; Store.Field
// adapts one locale to the field.ResultField and field.ResultWatcher
// interfaces so a controller can write to it and observe writes made by
// other processes' commands after a reload.
package store
