package compute

import (
	"testing"
	"time"

	"github.com/readingtime/readingtime/pkg/content"
)

// baseTime is a fixed reference point so all test timings are deterministic.
var baseTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestEngine_Process(t *testing.T) {
	e := NewEngine(defaultCfg())

	est := e.Process("en-US", content.Markdown{Text: fiveWords + " ![a](b.png)"}, baseTime)

	if est.Locale != "en-US" || est.Format != "markdown" {
		t.Errorf("Estimate = %s/%s, want en-US/markdown", est.Locale, est.Format)
	}
	if est.Normalized.Assets != 1 {
		t.Errorf("Normalized.Assets = %d, want 1", est.Normalized.Assets)
	}
	if !est.ComputedAt.Equal(baseTime) {
		t.Errorf("ComputedAt = %v, want %v", est.ComputedAt, baseTime)
	}
	// 6 words (alt text included) + 1 asset: 6/225 + 10/60 = 0.193 → 0.2
	if est.Result.MinutesText() != "0.2" {
		t.Errorf("Minutes = %s, want 0.2", est.Result.MinutesText())
	}
}

func TestEngine_LastPerLocale(t *testing.T) {
	e := NewEngine(defaultCfg())

	if _, ok := e.Last("de-DE"); ok {
		t.Fatal("Last before any Process: got ok=true")
	}

	e.Process("en-US", content.Markdown{Text: "one"}, baseTime)
	e.Process("de-DE", content.Markdown{Text: "eins zwei"}, baseTime)
	e.Process("en-US", content.Markdown{Text: "one two three"}, baseTime.Add(time.Second))

	en, ok := e.Last("en-US")
	if !ok || en.Result.Words != 3 {
		t.Errorf("Last(en-US) = %+v, %v; want 3 words", en.Result, ok)
	}
	de, ok := e.Last("de-DE")
	if !ok || de.Result.Words != 2 {
		t.Errorf("Last(de-DE) = %+v, %v; want 2 words", de.Result, ok)
	}
	if n := e.Runs("en-US"); n != 2 {
		t.Errorf("Runs(en-US) = %d, want 2", n)
	}
}

func TestEngine_NilSource(t *testing.T) {
	e := NewEngine(defaultCfg())
	est := e.Process("en-US", nil, baseTime)
	if est.Format != "" || est.Result.Words != 0 {
		t.Errorf("nil source: got %+v", est)
	}
}
