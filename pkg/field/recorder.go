package field

// EventKind classifies what the controller did with an input.
type EventKind int

const (
	// Recomputed: a new computed value was produced.
	Recomputed EventKind = iota
	// Scheduled: a content change scheduled a recomputation.
	Scheduled
	// Suppressed: a content change arrived while the value was overridden.
	Suppressed
	// Ignored: a content change arrived for another locale.
	Ignored
	// Overrode: the user entered a manual value.
	Overrode
	// Reset: the user cleared the override.
	Reset
	// Rejected: the user's input failed validation.
	Rejected
)

var eventNames = [...]string{"recomputed", "scheduled", "suppressed", "ignored", "overridden", "reset", "rejected"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// EventKinds lists every kind in declaration order.
func EventKinds() []EventKind {
	return []EventKind{Recomputed, Scheduled, Suppressed, Ignored, Overrode, Reset, Rejected}
}

// Recorder observes controller activity.
type Recorder interface {
	Observe(kind EventKind, locale string)
}

type nopRecorder struct{}

func (nopRecorder) Observe(EventKind, string) {}
