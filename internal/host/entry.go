package host

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/readingtime/readingtime/pkg/field"
)

// entryFile is the on-disk shape of an entry:
//
//	fields:
//	  body:
//	    type: Text
//	    locales:
//	      en-US: "The quick brown fox"
//
// RichText values are written as YAML mappings of the JSON document.
type entryFile struct {
	Fields map[string]fieldFile `yaml:"fields"`
}

type fieldFile struct {
	Type    string         `yaml:"type"`
	Locales map[string]any `yaml:"locales"`
}

// Entry is a content entry loaded from a YAML file. It implements
// field.Entry; Reload and Watch push changed values to subscribers.
type Entry struct {
	path string

	mu        sync.RWMutex
	fields    map[string]*Field
	added     map[int]func(fieldID string, locales []string)
	nextAdded int
}

// LoadEntry reads the entry file at path.
func LoadEntry(path string) (*Entry, error) {
	e := &Entry{
		path:   path,
		fields: make(map[string]*Field),
		added:  make(map[int]func(string, []string)),
	}
	if _, err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Path returns the file the entry was loaded from.
func (e *Entry) Path() string { return e.path }

// Field returns the field with the given id.
func (e *Entry) Field(id string) (field.SourceField, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	f, ok := e.fields[id]
	if !ok {
		return nil, false
	}
	return f, true
}

// OnLocalesAdded registers fn to run after a reload that introduces locales
// a field did not have before. fn receives the new locales in sorted order.
func (e *Entry) OnLocalesAdded(fn func(fieldID string, locales []string)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextAdded++
	id := e.nextAdded
	e.added[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.added, id)
	}
}

// Reload re-reads the file and notifies subscribers of every locale whose
// value changed, then reports locales new to a field to OnLocalesAdded
// callbacks. It returns the number of changed values. Fields that disappear
// from the file keep their last value.
func (e *Entry) Reload() (int, error) {
	data, err := os.ReadFile(e.path)
	if err != nil {
		return 0, fmt.Errorf("host: read entry: %w", err)
	}
	parsed, err := parseEntry(data)
	if err != nil {
		return 0, fmt.Errorf("host: %s: %w", e.path, err)
	}

	var changed []change
	e.mu.Lock()
	for id, ff := range parsed {
		f, ok := e.fields[id]
		if !ok {
			f = newField(id, ff.typ)
			e.fields[id] = f
		}
		changed = append(changed, f.update(ff.values)...)
	}
	hooks := make([]func(string, []string), 0, len(e.added))
	for _, fn := range e.added {
		hooks = append(hooks, fn)
	}
	e.mu.Unlock()

	added := make(map[string][]string)
	for _, c := range changed {
		slog.Debug("host: value changed", "field", c.field.id, "locale", c.locale)
		c.field.notify(c.locale, c.value)
		if c.added {
			added[c.field.id] = append(added[c.field.id], c.locale)
		}
	}
	for id, locales := range added {
		sort.Strings(locales)
		slog.Info("host: locales added", "field", id, "locales", locales)
		for _, fn := range hooks {
			fn(id, locales)
		}
	}
	return len(changed), nil
}

type parsedField struct {
	typ    string
	values map[string]json.RawMessage
}

func parseEntry(data []byte) (map[string]parsedField, error) {
	var ef entryFile
	if err := yaml.Unmarshal(data, &ef); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	out := make(map[string]parsedField, len(ef.Fields))
	for id, ff := range ef.Fields {
		if ff.Type == "" {
			return nil, fmt.Errorf("fields.%s: type is required", id)
		}
		values := make(map[string]json.RawMessage, len(ff.Locales))
		for locale, v := range ff.Locales {
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("fields.%s.%s: %w", id, locale, err)
			}
			values[locale] = raw
		}
		out[id] = parsedField{typ: ff.Type, values: values}
	}
	return out, nil
}

type change struct {
	field  *Field
	locale string
	value  json.RawMessage
	added  bool
}

// Field is one field of an Entry. It implements field.SourceField.
type Field struct {
	id  string
	typ string

	mu     sync.RWMutex
	values map[string]json.RawMessage
	subs   map[string]map[int]func(json.RawMessage)
	nextID int
}

func newField(id, typ string) *Field {
	return &Field{
		id:     id,
		typ:    typ,
		values: make(map[string]json.RawMessage),
		subs:   make(map[string]map[int]func(json.RawMessage)),
	}
}

func (f *Field) ID() string   { return f.id }
func (f *Field) Type() string { return f.typ }

// Locales returns the field's locales in sorted order.
func (f *Field) Locales() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.values))
	for l := range f.values {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Value returns the raw value for locale, or JSON null when unset.
func (f *Field) Value(locale string) json.RawMessage {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if v, ok := f.values[locale]; ok {
		return v
	}
	return json.RawMessage("null")
}

// OnValueChanged registers fn for changes to locale.
func (f *Field) OnValueChanged(locale string, fn func(json.RawMessage)) (unsubscribe func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	if f.subs[locale] == nil {
		f.subs[locale] = make(map[int]func(json.RawMessage))
	}
	f.subs[locale][id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs[locale], id)
	}
}

// Subscribers returns the number of registered callbacks across locales.
func (f *Field) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, m := range f.subs {
		n += len(m)
	}
	return n
}

func (f *Field) update(values map[string]json.RawMessage) []change {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []change
	for locale, v := range values {
		old, ok := f.values[locale]
		if ok && bytes.Equal(old, v) {
			continue
		}
		f.values[locale] = v
		out = append(out, change{field: f, locale: locale, value: v, added: !ok})
	}
	return out
}

func (f *Field) notify(locale string, v json.RawMessage) {
	f.mu.RLock()
	fns := make([]func(json.RawMessage), 0, len(f.subs[locale]))
	for _, fn := range f.subs[locale] {
		fns = append(fns, fn)
	}
	f.mu.RUnlock()

	for _, fn := range fns {
		fn(v)
	}
}
