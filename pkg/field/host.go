package field

import (
	"context"
	"encoding/json"

	"github.com/readingtime/readingtime/pkg/types"
)

// Entry is the content record that owns the source field.
type Entry interface {
	// Field returns the field with the given id and whether it exists.
	Field(id string) (SourceField, bool)
}

// SourceField is the field whose content is measured.
type SourceField interface {
	ID() string

	// Type is the host field type, e.g. "RichText" or "Text".
	Type() string

	// Locales lists every locale the field holds a value for.
	Locales() []string

	// Value returns the raw JSON value for locale (null when unset).
	Value(locale string) json.RawMessage

	// OnValueChanged registers fn for changes in locale and returns the
	// function that removes the registration.
	OnValueChanged(locale string, fn func(json.RawMessage)) (unsubscribe func())
}

// ResultField is the host field that stores the reading time.
type ResultField interface {
	// Locale is the locale this field instance edits.
	Locale() string

	// Value returns the stored value, or nil when none exists yet.
	Value() *types.Result

	// SetValue persists r.
	SetValue(r types.Result) error
}

// ResultWatcher is implemented by result fields whose value can change
// underneath the controller, e.g. when another editor writes it.
type ResultWatcher interface {
	OnValueChanged(fn func(*types.Result)) (unsubscribe func())
}

// Prompter asks the user for a value. ok is false when the prompt was
// dismissed; an empty value with ok true asks for a reset.
type Prompter interface {
	Prompt(ctx context.Context, title, message, defaultValue string) (value string, ok bool, err error)
}

// Prompt texts used by Controller.Edit.
const (
	PromptTitle   = "Override calculated reading time"
	PromptMessage = "Enter new reading time in minutes (leave it empty to reset and use instead calculated value):"
)
