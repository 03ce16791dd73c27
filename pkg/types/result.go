package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Result is the reading-time value stored in the host field.
type Result struct {
	// Minutes is the weighted total, rounded to one decimal place.
	Minutes decimal.Decimal

	// Seconds is derived from the word count alone. Asset and entry time is
	// only ever added to Minutes.
	Seconds int

	// Words is the number of words in the normalized text.
	Words int

	// Assets and Entries count the embedded references found in the content.
	// Both are zero for an overridden value.
	Assets  int
	Entries int

	// Overridden is true when the value was supplied manually.
	Overridden bool
}

// RoundMinutes rounds m half-up to one decimal place. Negative input yields zero.
func RoundMinutes(m float64) decimal.Decimal {
	d := decimal.NewFromFloat(m).Round(1)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// MinutesText returns Minutes with exactly one decimal, e.g. "0.5" or "3.0".
func (r Result) MinutesText() string {
	return r.Minutes.StringFixed(1)
}

// Equal reports whether r and o carry the same values.
func (r Result) Equal(o Result) bool {
	return r.Minutes.Equal(o.Minutes) &&
		r.Seconds == o.Seconds &&
		r.Words == o.Words &&
		r.Assets == o.Assets &&
		r.Entries == o.Entries &&
		r.Overridden == o.Overridden
}

// Summary renders r the way the field and sidebar display it:
// "0.5 minutes, 1 second, 5 words, 2 assets, 1 entry".
func (r Result) Summary() string {
	minutes := r.MinutesText() + " minutes"
	if r.Minutes.Equal(decimal.NewFromInt(1)) {
		minutes = "1 minute"
	}
	return strings.Join([]string{
		minutes,
		plural(r.Seconds, "second", "seconds"),
		plural(r.Words, "word", "words"),
		plural(r.Assets, "asset", "assets"),
		plural(r.Entries, "entry", "entries"),
	}, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

type resultJSON struct {
	Minutes    string `json:"minutes"`
	Seconds    int    `json:"seconds"`
	Words      int    `json:"words"`
	Assets     int    `json:"assets"`
	Entries    int    `json:"entries"`
	Overridden bool   `json:"overridden"`
}

// MarshalJSON encodes minutes as a one-decimal string, matching what hosts
// have always stored in the field.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Minutes:    r.MinutesText(),
		Seconds:    r.Seconds,
		Words:      r.Words,
		Assets:     r.Assets,
		Entries:    r.Entries,
		Overridden: r.Overridden,
	})
}

// legacyJSON accepts every shape a stored value has been written in.
// Older values use "time" for seconds, the misspelled "overriden" flag, and
// may carry minutes as a number.
type legacyJSON struct {
	Minutes    json.RawMessage `json:"minutes"`
	Seconds    *int            `json:"seconds"`
	Time       *float64        `json:"time"`
	Words      int             `json:"words"`
	Assets     int             `json:"assets"`
	Entries    int             `json:"entries"`
	Overridden *bool           `json:"overridden"`
	Overriden  *bool           `json:"overriden"`
}

// UnmarshalJSON decodes canonical and legacy field values.
func (r *Result) UnmarshalJSON(data []byte) error {
	var aux legacyJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("types: decode result: %w", err)
	}

	minutes := decimal.Zero
	if raw := bytes.TrimSpace(aux.Minutes); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		raw = bytes.Trim(raw, `"`)
		d, err := decimal.NewFromString(string(raw))
		if err != nil {
			return fmt.Errorf("types: decode result minutes %q: %w", raw, err)
		}
		minutes = d
	}

	out := Result{
		Minutes: minutes,
		Words:   aux.Words,
		Assets:  aux.Assets,
		Entries: aux.Entries,
	}
	switch {
	case aux.Seconds != nil:
		out.Seconds = *aux.Seconds
	case aux.Time != nil:
		out.Seconds = int(*aux.Time)
	}
	switch {
	case aux.Overridden != nil:
		out.Overridden = *aux.Overridden
	case aux.Overriden != nil:
		out.Overridden = *aux.Overriden
	}

	*r = out
	return nil
}
