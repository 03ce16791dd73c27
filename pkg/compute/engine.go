package compute

import (
	"log/slog"
	"sync"
	"time"

	"github.com/readingtime/readingtime/pkg/content"
	"github.com/readingtime/readingtime/pkg/types"
)

// Estimate is one computed reading time for a locale, together with the
// normalized content it was computed from.
type Estimate struct {
	Locale     string
	Format     string
	Normalized content.Normalized
	Result     types.Result
	ComputedAt time.Time
}

// Engine normalizes and computes sources and keeps the latest Estimate per
// locale.
//
// All exported methods are safe for concurrent use.
type Engine struct {
	cfg types.Config

	mu     sync.Mutex
	states map[string]*localeState
}

// NewEngine returns an Engine that computes with cfg for its whole lifetime.
func NewEngine(cfg types.Config) *Engine {
	return &Engine{cfg: cfg, states: make(map[string]*localeState)}
}

// Config returns the configuration the engine computes with.
func (e *Engine) Config() types.Config { return e.cfg }

// Process normalizes src, computes its Result and records it as the latest
// estimate for locale.
//
// now is passed explicitly so callers (and tests) control the clock.
// Use time.Now() in production.
func (e *Engine) Process(locale string, src content.Source, now time.Time) Estimate {
	norm := content.Normalize(src)
	est := Estimate{
		Locale:     locale,
		Normalized: norm,
		Result:     Compute(InputFrom(norm), e.cfg),
		ComputedAt: now,
	}
	if src != nil {
		est.Format = src.Format()
	}

	e.mu.Lock()
	st := e.stateFor(locale)
	st.last = est
	st.runs++
	runs := st.runs
	e.mu.Unlock()

	slog.Debug("compute: estimated reading time",
		"locale", locale,
		"format", est.Format,
		"minutes", est.Result.MinutesText(),
		"words", est.Result.Words,
		"runs", runs,
	)
	return est
}

// Last returns the latest estimate for locale and whether one exists.
func (e *Engine) Last(locale string) (Estimate, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.states[locale]
	if !ok || st.runs == 0 {
		return Estimate{}, false
	}
	return st.last, true
}

// Runs returns how many times locale has been processed.
func (e *Engine) Runs(locale string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.states[locale]; ok {
		return st.runs
	}
	return 0
}

// localeState holds the latest estimate for one locale.
type localeState struct {
	last Estimate
	runs int
}

func (e *Engine) stateFor(locale string) *localeState {
	if st, ok := e.states[locale]; ok {
		return st
	}
	st := &localeState{}
	e.states[locale] = st
	return st
}
