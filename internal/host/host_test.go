package host

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/readingtime/readingtime/internal/store"
	"github.com/readingtime/readingtime/pkg/content"
	"github.com/readingtime/readingtime/pkg/field"
	"github.com/readingtime/readingtime/pkg/types"
)

var (
	_ field.Entry       = (*Entry)(nil)
	_ field.SourceField = (*Field)(nil)
	_ field.Prompter    = Terminal{}
)

const textEntry = `
fields:
  body:
    type: Text
    locales:
      en-US: "The quick brown fox jumps"
      de-DE: "Der schnelle braune Fuchs"
`

const richEntry = `
fields:
  body:
    type: RichText
    locales:
      en-US:
        nodeType: document
        data: {}
        content:
          - nodeType: paragraph
            data: {}
            content:
              - {nodeType: text, value: "The quick brown fox jumps", marks: [], data: {}}
          - nodeType: embedded-asset-block
            data: {target: {sys: {id: a1, type: Link, linkType: Asset}}}
            content: []
          - nodeType: embedded-entry-block
            data: {target: {sys: {id: e1, type: Link, linkType: Entry}}}
            content: []
`

func writeEntry(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write entry: %v", err)
	}
}

func loadEntry(t *testing.T, content string) (*Entry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entry.yaml")
	writeEntry(t, path, content)
	e, err := LoadEntry(path)
	if err != nil {
		t.Fatalf("LoadEntry: %v", err)
	}
	return e, path
}

func TestLoadEntry_Text(t *testing.T) {
	e, _ := loadEntry(t, textEntry)

	sf, ok := e.Field("body")
	if !ok {
		t.Fatal("Field(body): not found")
	}
	if sf.Type() != content.FieldText {
		t.Errorf("Type = %q", sf.Type())
	}
	if got := sf.Locales(); len(got) != 2 || got[0] != "de-DE" || got[1] != "en-US" {
		t.Errorf("Locales = %v", got)
	}
	var s string
	if err := json.Unmarshal(sf.Value("en-US"), &s); err != nil || s != "The quick brown fox jumps" {
		t.Errorf("Value(en-US) = %s (%v)", sf.Value("en-US"), err)
	}
	if v := sf.Value("fr-FR"); string(v) != "null" {
		t.Errorf("Value(fr-FR) = %s, want null", v)
	}
	if _, ok := e.Field("summary"); ok {
		t.Error("Field(summary): want not found")
	}
}

func TestLoadEntry_RichText(t *testing.T) {
	e, _ := loadEntry(t, richEntry)
	sf, _ := e.Field("body")

	n := content.Normalize(content.FromField(sf.Type(), sf.Value("en-US")))
	if n.Assets != 1 || n.Entries != 1 || !strings.Contains(n.Text, "quick brown fox") {
		t.Errorf("normalized = %+v", n)
	}
}

func TestLoadEntry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "fields: [\n"},
		{"missing type", "fields:\n  body:\n    locales: {en-US: x}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "entry.yaml")
			writeEntry(t, path, tc.content)
			if _, err := LoadEntry(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := LoadEntry(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file: expected error")
	}
}

func TestReload_NotifiesChangedLocalesOnly(t *testing.T) {
	e, path := loadEntry(t, textEntry)
	sf, _ := e.Field("body")

	var mu sync.Mutex
	got := map[string]int{}
	for _, l := range sf.Locales() {
		l := l
		sf.OnValueChanged(l, func(json.RawMessage) {
			mu.Lock()
			defer mu.Unlock()
			got[l]++
		})
	}

	writeEntry(t, path, strings.Replace(textEntry, "The quick brown fox jumps", "Edited text", 1))
	n, err := e.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if n != 1 || got["en-US"] != 1 || got["de-DE"] != 0 {
		t.Errorf("changed = %d, notifications = %v", n, got)
	}

	// Unchanged file: no notifications.
	if n, _ := e.Reload(); n != 0 {
		t.Errorf("second Reload changed %d values, want 0", n)
	}
}

func TestReload_ReportsAddedLocales(t *testing.T) {
	e, path := loadEntry(t, textEntry)

	type report struct {
		field   string
		locales []string
	}
	var got []report
	unsub := e.OnLocalesAdded(func(id string, locales []string) {
		got = append(got, report{id, locales})
	})

	// An edit to an existing locale is not an addition.
	writeEntry(t, path, strings.Replace(textEntry, "jumps", "leaps", 1))
	e.Reload() //nolint:errcheck
	if len(got) != 0 {
		t.Fatalf("edit reported additions: %v", got)
	}

	grown := textEntry + "      fr-FR: \"Le renard brun\"\n      es-ES: \"El zorro\"\n"
	writeEntry(t, path, grown)
	if _, err := e.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if len(got) != 1 || got[0].field != "body" || strings.Join(got[0].locales, ",") != "es-ES,fr-FR" {
		t.Errorf("added = %v, want body [es-ES fr-FR]", got)
	}

	unsub()
	writeEntry(t, path, grown+"      it-IT: \"La volpe\"\n")
	e.Reload() //nolint:errcheck
	if len(got) != 1 {
		t.Errorf("callback ran after unsubscribe: %v", got)
	}
}

func TestField_Unsubscribe(t *testing.T) {
	e, path := loadEntry(t, textEntry)
	sf, _ := e.Field("body")
	f := sf.(*Field)

	calls := 0
	unsub := f.OnValueChanged("en-US", func(json.RawMessage) { calls++ })
	if f.Subscribers() != 1 {
		t.Fatalf("Subscribers = %d, want 1", f.Subscribers())
	}
	unsub()
	writeEntry(t, path, strings.Replace(textEntry, "jumps", "leaps", 1))
	e.Reload() //nolint:errcheck
	if calls != 0 || f.Subscribers() != 0 {
		t.Errorf("calls = %d, subscribers = %d after unsubscribe", calls, f.Subscribers())
	}
}

// TestWatch_DrivesController edits the entry file on disk and expects the
// controller to store the recomputed reading time.
func TestWatch_DrivesController(t *testing.T) {
	e, path := loadEntry(t, textEntry)
	st := store.New(nil)

	ctrl, err := field.New(e, "body", st.Field("en-US"), types.DefaultConfig(),
		field.WithQuietPeriod(20*time.Millisecond))
	if err != nil {
		t.Fatalf("field.New: %v", err)
	}
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- e.Watch(ctx) }()
	time.Sleep(100 * time.Millisecond)

	writeEntry(t, path, strings.Replace(textEntry, "The quick brown fox jumps", "one two three four five six seven", 1))

	deadline := time.Now().Add(5 * time.Second)
	for {
		if ent, ok := st.Get("en-US"); ok && ent.Result.Words == 7 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("controller did not store the recomputed value within 5s")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestTerminal_Prompt(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"value", "3.5\n", "3.5", true},
		{"no newline", "4", "4", true},
		{"empty resets", "\n", "", true},
		{"keep default", "-\n", "0.5", true},
		{"eof dismisses", "", "", false},
		{"crlf", "2\r\n", "2", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			p := Terminal{In: strings.NewReader(tc.in), Out: &out}
			got, ok, err := p.Prompt(context.Background(), field.PromptTitle, field.PromptMessage, "0.5")
			if err != nil {
				t.Fatalf("Prompt: %v", err)
			}
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("Prompt = (%q, %v), want (%q, %v)", got, ok, tc.want, tc.wantOK)
			}
			if !strings.Contains(out.String(), field.PromptTitle) || !strings.Contains(out.String(), "[0.5]") {
				t.Errorf("prompt output = %q", out.String())
			}
		})
	}
}

func TestTerminal_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if _, _, err := (Terminal{In: strings.NewReader("1\n"), Out: &out}).Prompt(ctx, "t", "m", ""); err == nil {
		t.Fatal("expected context error")
	}
}
