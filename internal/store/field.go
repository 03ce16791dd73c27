package store

import (
	"github.com/readingtime/readingtime/pkg/types"
)

// ResultField exposes one locale of the store as the reading-time field a
// controller writes to.
type ResultField struct {
	store  *Store
	locale string
}

// Field returns the result field for locale.
func (s *Store) Field(locale string) *ResultField {
	return &ResultField{store: s, locale: locale}
}

// Locale returns the locale the field stores.
func (f *ResultField) Locale() string { return f.locale }

// Value returns the stored result, or nil when nothing has been stored yet.
func (f *ResultField) Value() *types.Result {
	e, ok := f.store.Get(f.locale)
	if !ok {
		return nil
	}
	return &e.Result
}

// SetValue stores r.
func (f *ResultField) SetValue(r types.Result) error {
	return f.store.Put(f.locale, r)
}

// OnValueChanged calls fn whenever the locale's value is written, including
// writes made through other handles such as the override command.
func (f *ResultField) OnValueChanged(fn func(*types.Result)) (unsubscribe func()) {
	return f.store.Subscribe(func(e Entry) {
		if e.Locale != f.locale {
			return
		}
		r := e.Result
		fn(&r)
	})
}
