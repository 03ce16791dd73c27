package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func minutes(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRoundMinutes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{0.0222, "0.0"},
		{0.05, "0.1"}, // half-up
		{0.15, "0.2"},
		{0.25, "0.3"},
		{0.5222, "0.5"},
		{3.44, "3.4"},
		{-1, "0.0"},
	}
	for _, tc := range tests {
		if got := RoundMinutes(tc.in).StringFixed(1); got != tc.want {
			t.Errorf("RoundMinutes(%v): got %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestResult_Summary(t *testing.T) {
	tests := []struct {
		name string
		r    Result
		want string
	}{
		{
			name: "zero value, all plural",
			r:    Result{},
			want: "0.0 minutes, 0 seconds, 0 words, 0 assets, 0 entries",
		},
		{
			name: "singulars",
			r:    Result{Minutes: minutes("1"), Seconds: 1, Words: 1, Assets: 1, Entries: 1},
			want: "1 minute, 1 second, 1 word, 1 asset, 1 entry",
		},
		{
			name: "mixed",
			r:    Result{Minutes: minutes("0.5"), Seconds: 1, Words: 5, Assets: 2, Entries: 1},
			want: "0.5 minutes, 1 second, 5 words, 2 assets, 1 entry",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Summary(); got != tc.want {
				t.Errorf("Summary():\n got %q\nwant %q", got, tc.want)
			}
		})
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	r := Result{Minutes: minutes("3.5"), Seconds: 210, Words: 788, Overridden: true}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"minutes":"3.5","seconds":210,"words":788,"assets":0,"entries":0,"overridden":true}`
	if string(data) != want {
		t.Errorf("Marshal:\n got %s\nwant %s", data, want)
	}
}

func TestResult_UnmarshalJSON_Legacy(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Result
	}{
		{
			name: "canonical",
			in:   `{"minutes":"0.5","seconds":1,"words":5,"assets":2,"entries":1,"overridden":false}`,
			want: Result{Minutes: minutes("0.5"), Seconds: 1, Words: 5, Assets: 2, Entries: 1},
		},
		{
			name: "misspelled flag and time key",
			in:   `{"minutes":"3.0","time":180,"words":675,"assets":0,"entries":0,"overriden":true}`,
			want: Result{Minutes: minutes("3"), Seconds: 180, Words: 675, Overridden: true},
		},
		{
			name: "numeric minutes",
			in:   `{"minutes":2.5,"words":560}`,
			want: Result{Minutes: minutes("2.5"), Words: 560},
		},
		{
			name: "empty object",
			in:   `{}`,
			want: Result{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got Result
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Unmarshal: got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestResult_UnmarshalJSON_BadMinutes(t *testing.T) {
	var r Result
	if err := json.Unmarshal([]byte(`{"minutes":"soon"}`), &r); err == nil {
		t.Fatal("expected error for non-numeric minutes, got nil")
	}
}

func TestConfigurationError(t *testing.T) {
	err := error(&ConfigurationError{FieldID: "body"})
	if !IsConfigurationError(err) {
		t.Fatal("IsConfigurationError: got false, want true")
	}
	if IsConfigurationError(ErrValidation) {
		t.Error("IsConfigurationError(ErrValidation): got true, want false")
	}
}
