// Package host is the file-backed reference host for reading-time fields.
//
// An Entry is loaded from a YAML file listing fields, their type and a value
// per locale. Entry.Watch reloads the file through fsnotify and fires the
// per-locale OnValueChanged callbacks of every value that changed, which is
// what drives the debounced recomputation in pkg/field. Terminal implements
// the override prompt on a line-oriented reader/writer pair.
package host
