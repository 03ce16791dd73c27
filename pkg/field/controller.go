package field

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/readingtime/readingtime/pkg/compute"
	"github.com/readingtime/readingtime/pkg/content"
	"github.com/readingtime/readingtime/pkg/override"
	"github.com/readingtime/readingtime/pkg/trigger"
	"github.com/readingtime/readingtime/pkg/types"
)

// ErrClosed is returned by operations on a closed Controller.
var ErrClosed = errors.New("field: controller closed")

// Controller keeps one reading-time field in sync with its source field.
//
// Host callbacks may arrive on any goroutine; the controller handles them
// one at a time.
type Controller struct {
	source   SourceField
	result   ResultField
	cfg      types.Config
	engine   *compute.Engine
	debounce *trigger.Debouncer
	rec      Recorder
	now      func() time.Time

	mu      sync.Mutex
	closed  bool
	current atomic.Pointer[types.Result]
	subs    Subscriptions
}

type options struct {
	quiet  time.Duration
	clock  trigger.Clock
	rec    Recorder
	engine *compute.Engine
	now    func() time.Time
}

// Option configures a Controller.
type Option func(*options)

// WithQuietPeriod sets the debounce interval (default 500ms).
func WithQuietPeriod(d time.Duration) Option { return func(o *options) { o.quiet = d } }

// WithClock sets the clock used for debouncing.
func WithClock(c trigger.Clock) Option { return func(o *options) { o.clock = c } }

// WithRecorder attaches an activity observer.
func WithRecorder(r Recorder) Option { return func(o *options) { o.rec = r } }

// WithEngine shares an Engine between controllers, e.g. one per locale of
// the same entry. The engine's Config is used in place of cfg.
func WithEngine(e *compute.Engine) Option { return func(o *options) { o.engine = e } }

// WithNow sets the timestamp source recorded on estimates.
func WithNow(now func() time.Time) Option { return func(o *options) { o.now = now } }

// New resolves the source field sourceID on entry and subscribes to its
// changes in every locale. It returns a *types.ConfigurationError when the
// field does not exist.
func New(entry Entry, sourceID string, result ResultField, cfg types.Config, opts ...Option) (*Controller, error) {
	var source SourceField
	if entry != nil {
		source, _ = entry.Field(sourceID)
	}
	if source == nil {
		return nil, &types.ConfigurationError{FieldID: sourceID}
	}
	if result == nil {
		return nil, fmt.Errorf("field: result field is required")
	}

	o := options{quiet: trigger.DefaultQuietPeriod, clock: trigger.RealClock, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = compute.NewEngine(cfg)
	}
	if o.rec == nil {
		o.rec = nopRecorder{}
	}

	c := &Controller{
		source:   source,
		result:   result,
		cfg:      o.engine.Config(),
		engine:   o.engine,
		debounce: trigger.New(o.quiet, trigger.WithClock(o.clock)),
		rec:      o.rec,
		now:      o.now,
	}

	initial := types.Result{}
	if v := result.Value(); v != nil {
		initial = *v
	}
	c.current.Store(&initial)

	for _, locale := range source.Locales() {
		locale := locale
		c.subs.Add(source.OnValueChanged(locale, func(raw json.RawMessage) {
			c.contentChanged(locale, raw)
		}))
	}
	if w, ok := result.(ResultWatcher); ok {
		c.subs.Add(w.OnValueChanged(c.resultChanged))
	}

	slog.Debug("field: controller started",
		"source", sourceID,
		"type", source.Type(),
		"locale", result.Locale(),
		"locales", len(source.Locales()),
	)
	return c, nil
}

// Current returns the value the field holds now.
func (c *Controller) Current() types.Result {
	return *c.current.Load()
}

// State returns whether the current value is computed or overridden.
func (c *Controller) State() override.State {
	return override.StateOf(c.Current())
}

// Config returns the configuration the controller computes with.
func (c *Controller) Config() types.Config { return c.cfg }

// Pending reports whether a recomputation is scheduled.
func (c *Controller) Pending() bool { return c.debounce.Pending() }

// Recompute computes the reading time from the live content of the active
// locale and stores it. An overridden value is left untouched.
func (c *Controller) Recompute() (types.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.Current(), ErrClosed
	}
	if c.State() == override.Overridden {
		return c.Current(), nil
	}
	c.debounce.Cancel()
	r := c.computeLive()
	if err := c.write(r); err != nil {
		return c.Current(), err
	}
	c.rec.Observe(Recomputed, c.result.Locale())
	return r, nil
}

// Edit runs the override dialog: it prompts with the current minutes as the
// default and applies the answer. A dismissed prompt changes nothing.
func (c *Controller) Edit(ctx context.Context, p Prompter) (types.Result, error) {
	if !c.cfg.AllowOverride {
		return c.Current(), fmt.Errorf("field: %w", types.ErrOverrideDisabled)
	}
	value, ok, err := p.Prompt(ctx, PromptTitle, PromptMessage, c.Current().MinutesText())
	if err != nil {
		return c.Current(), fmt.Errorf("field: prompt: %w", err)
	}
	if !ok {
		return c.apply(override.Cancel{})
	}
	return c.apply(override.Submit{Value: value})
}

// Submit applies an override value directly. An empty value resets the field
// to its computed reading time.
func (c *Controller) Submit(value string) (types.Result, error) {
	return c.apply(override.Submit{Value: value})
}

// Close releases every subscription and cancels pending work. It is safe to
// call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.debounce.Stop()
	c.subs.Close()
}

func (c *Controller) apply(ev override.Event) (types.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.Current(), ErrClosed
	}

	locale := c.result.Locale()
	out, err := override.Transition(c.Current(), ev, c.cfg, c.computeLive)
	if err != nil {
		c.rec.Observe(Rejected, locale)
		slog.Info("field: override rejected", "locale", locale, "err", err)
		return c.Current(), err
	}

	if sub, ok := ev.(override.Submit); ok {
		// A recomputation scheduled before the submit must not replace it.
		c.debounce.Cancel()
		if sub.Value == "" {
			c.rec.Observe(Reset, locale)
		} else {
			c.rec.Observe(Overrode, locale)
		}
	}
	if out.Changed {
		if err := c.write(out.Result); err != nil {
			return c.Current(), err
		}
	}
	return out.Result, nil
}

func (c *Controller) contentChanged(locale string, raw json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if locale != c.result.Locale() {
		c.rec.Observe(Ignored, locale)
		return
	}

	out, _ := override.Transition(c.Current(), override.ContentChanged{}, c.cfg, nil)
	if !out.Recompute {
		c.rec.Observe(Suppressed, locale)
		return
	}

	src := content.FromField(c.source.Type(), raw)
	if c.debounce.Schedule(func() { c.recomputeScheduled(locale, src) }) {
		c.rec.Observe(Scheduled, locale)
	}
}

func (c *Controller) recomputeScheduled(locale string, src content.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.State() == override.Overridden {
		c.rec.Observe(Suppressed, locale)
		return
	}
	est := c.engine.Process(locale, src, c.now())
	if err := c.write(est.Result); err != nil {
		return
	}
	c.rec.Observe(Recomputed, locale)
}

func (c *Controller) resultChanged(v *types.Result) {
	next := types.Result{}
	if v != nil {
		next = *v
	}
	c.current.Store(&next)
}

// computeLive must be called with c.mu held.
func (c *Controller) computeLive() types.Result {
	locale := c.result.Locale()
	src := content.FromField(c.source.Type(), c.source.Value(locale))
	return c.engine.Process(locale, src, c.now()).Result
}

// write stores r in the host when it differs from the current value.
// Must be called with c.mu held.
func (c *Controller) write(r types.Result) error {
	if r.Equal(c.Current()) {
		return nil
	}
	if err := c.result.SetValue(r); err != nil {
		slog.Error("field: store reading time failed", "locale", c.result.Locale(), "err", err)
		return fmt.Errorf("field: set value: %w", err)
	}
	c.current.Store(&r)
	return nil
}
