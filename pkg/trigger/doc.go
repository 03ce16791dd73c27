// Package trigger provides the trailing-edge debouncer that schedules
// reading-time recomputation.
//
// Debouncer.Schedule(fn) cancels any pending task and schedules fn to run
// once the quiet period (500ms by default) passes without another Schedule.
// Only the last task of a burst ever runs. A task cancelled by Schedule,
// Cancel or Stop never runs, even if its timer had already fired.
//
// Time is read through the Clock interface. RealClock is backed by
// time.AfterFunc; ManualClock is advanced explicitly and fires due tasks
// synchronously, for tests and for hosts that drive their own event loop.
package trigger
