package trigger

import (
	"sync"
	"time"
)

// DefaultQuietPeriod is how long a burst of changes must stay quiet before
// the last scheduled task runs.
const DefaultQuietPeriod = 500 * time.Millisecond

// Debouncer runs only the most recently scheduled task of a burst.
//
// All exported methods are safe for concurrent use.
type Debouncer struct {
	quiet time.Duration
	clock Clock

	mu         sync.Mutex
	gen        uint64
	timer      Timer
	task       func()
	stopped    bool
	superseded int
}

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithClock replaces the wall clock, e.g. with a ManualClock in tests.
func WithClock(c Clock) Option {
	return func(d *Debouncer) { d.clock = c }
}

// New returns a Debouncer with the given quiet period. A non-positive period
// selects DefaultQuietPeriod.
func New(quiet time.Duration, opts ...Option) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	d := &Debouncer{quiet: quiet, clock: RealClock}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Schedule cancels any pending task and schedules fn to run after the quiet
// period. It returns false, without scheduling, once the Debouncer is stopped.
func (d *Debouncer) Schedule(fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return false
	}
	if d.cancelLocked() {
		d.superseded++
	}
	d.gen++
	gen := d.gen
	d.task = fn
	d.timer = d.clock.AfterFunc(d.quiet, func() { d.fire(gen) })
	return true
}

// Cancel drops the pending task, if any, and reports whether there was one.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Stop cancels the pending task and rejects every later Schedule.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

// Pending reports whether a task is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.task != nil
}

// Superseded returns how many scheduled tasks were replaced by a later
// Schedule before they could run.
func (d *Debouncer) Superseded() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.superseded
}

// cancelLocked invalidates the current generation so a timer that already
// fired cannot run its task.
func (d *Debouncer) cancelLocked() bool {
	if d.task == nil {
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.timer = nil
	d.task = nil
	return true
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen || d.task == nil {
		d.mu.Unlock()
		return
	}
	task := d.task
	d.task = nil
	d.timer = nil
	d.mu.Unlock()

	task()
}
