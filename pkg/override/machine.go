package override

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/readingtime/readingtime/pkg/types"
)

// State is the override state of a field value.
type State int

const (
	Computed State = iota
	Overridden
)

func (s State) String() string {
	if s == Overridden {
		return "overridden"
	}
	return "computed"
}

// StateOf derives the state of cur. A stored override stays Overridden even
// after the installation stops allowing new ones.
func StateOf(cur types.Result) State {
	if cur.Overridden {
		return Overridden
	}
	return Computed
}

// Event is an input to Transition.
type Event interface {
	isEvent()
}

// Submit is a value entered in the override prompt. An empty Value resets
// the field to its computed reading time.
type Submit struct {
	Value string
}

// Cancel is a dismissed override prompt.
type Cancel struct{}

// ContentChanged is an upstream change to the source content.
type ContentChanged struct{}

func (Submit) isEvent()         {}
func (Cancel) isEvent()         {}
func (ContentChanged) isEvent() {}

// Outcome is the result of a transition.
type Outcome struct {
	// Result is the value the field should hold next.
	Result types.Result

	// Changed is true when Result differs from the current value and should
	// be written to the host.
	Changed bool

	// Recompute is true when the caller should schedule a recomputation
	// (ContentChanged in the Computed state).
	Recompute bool
}

// ErrNoRecompute is returned when a reset is requested without a way to
// recompute the value.
var ErrNoRecompute = errors.New("override: reset requires a recompute function")

// Transition applies ev to the current value cur. recompute is called to
// obtain a fresh computed value from the live content when the field is reset.
//
// A rejected submission returns an error wrapping types.ErrValidation or
// types.ErrOverrideDisabled, and an Outcome that keeps cur.
func Transition(cur types.Result, ev Event, cfg types.Config, recompute func() types.Result) (Outcome, error) {
	keep := Outcome{Result: cur}

	switch e := ev.(type) {
	case Cancel:
		return keep, nil

	case ContentChanged:
		keep.Recompute = StateOf(cur) == Computed
		return keep, nil

	case Submit:
		if !cfg.AllowOverride {
			return keep, fmt.Errorf("override: %w", types.ErrOverrideDisabled)
		}
		if e.Value == "" {
			if recompute == nil {
				return keep, ErrNoRecompute
			}
			next := recompute()
			next.Overridden = false
			return Outcome{Result: next, Changed: !next.Equal(cur)}, nil
		}
		next, err := Parse(e.Value, cfg)
		if err != nil {
			return keep, err
		}
		return Outcome{Result: next, Changed: !next.Equal(cur)}, nil

	default:
		return keep, fmt.Errorf("override: unsupported event %T", ev)
	}
}

// minutesInput is the accepted override format: digits with an optional
// fractional part.
var minutesInput = regexp.MustCompile(`^\d+(\.\d+)?$`)

// maxCount bounds the derived seconds and words so they fit an int on every
// platform.
var maxCount = decimal.NewFromInt(math.MaxInt32)

// Parse builds the overridden Result for a minutes value typed by the user.
// Minutes are rounded to one decimal; seconds and words are derived from the
// unrounded value. Values whose seconds or words exceed maxCount are
// rejected.
func Parse(input string, cfg types.Config) (types.Result, error) {
	value := strings.TrimSpace(input)
	if !minutesInput.MatchString(value) {
		return types.Result{}, fmt.Errorf("override: %q: %w", input, types.ErrValidation)
	}
	m, err := decimal.NewFromString(value)
	if err != nil {
		return types.Result{}, fmt.Errorf("override: %q: %w", input, types.ErrValidation)
	}

	wpm := cfg.WordsPerMinute
	if wpm <= 0 {
		wpm = types.DefaultWordsPerMinute
	}
	seconds := m.Mul(decimal.NewFromInt(60)).Round(0)
	words := m.Mul(decimal.NewFromInt(int64(wpm))).Round(0)
	if seconds.GreaterThan(maxCount) || words.GreaterThan(maxCount) {
		return types.Result{}, fmt.Errorf("override: %q is too large: %w", input, types.ErrValidation)
	}
	return types.Result{
		Minutes:    m.Round(1),
		Seconds:    int(seconds.IntPart()),
		Words:      int(words.IntPart()),
		Overridden: true,
	}, nil
}
