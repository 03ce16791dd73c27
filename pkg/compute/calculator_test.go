package compute

import (
	"strings"
	"testing"

	"github.com/readingtime/readingtime/pkg/types"
)

const fiveWords = "The quick brown fox jumps"

func defaultCfg() types.Config { return types.DefaultConfig() }

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", " \n\t ", 0},
		{"five words", fiveWords, 5},
		{"surrounding space", "  padded   words \n", 2},
		{"punctuation stays attached", "Hello, world! It's fine.", 4},
		{"newlines and tabs", "one\ntwo\tthree\r\nfour", 4},
		{"each ideograph is a word", "你好世界", 4},
		{"punctuation after ideograph", "日本語。です", 5},
		{"mixed scripts", "Go语言", 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CountWords(tc.in); got != tc.want {
				t.Errorf("CountWords(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestCompute_Examples(t *testing.T) {
	tests := []struct {
		name        string
		in          Input
		wantMinutes string
		wantSeconds int
		wantWords   int
	}{
		{
			// 5/225 = 0.0222 → 0.0
			name:        "plain text only",
			in:          Input{Text: fiveWords},
			wantMinutes: "0.0",
			wantSeconds: 1,
			wantWords:   5,
		},
		{
			// 0.0222 + 2*10/60 + 1*10/60 = 0.5222 → 0.5
			name:        "with two assets and one entry",
			in:          Input{Text: fiveWords, Assets: 2, Entries: 1},
			wantMinutes: "0.5",
			wantSeconds: 1,
			wantWords:   5,
		},
		{
			name:        "empty text",
			in:          Input{},
			wantMinutes: "0.0",
			wantSeconds: 0,
			wantWords:   0,
		},
		{
			// 450 words at 225 wpm = 2 minutes exactly
			name:        "two minutes of words",
			in:          Input{Text: strings.Repeat("word ", 450)},
			wantMinutes: "2.0",
			wantSeconds: 120,
			wantWords:   450,
		},
		{
			// 3 entries * 10s = 0.5 minutes, no text
			name:        "entries only",
			in:          Input{Entries: 3},
			wantMinutes: "0.5",
			wantSeconds: 0,
			wantWords:   0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.in, defaultCfg())
			if got.MinutesText() != tc.wantMinutes {
				t.Errorf("Minutes = %s, want %s", got.MinutesText(), tc.wantMinutes)
			}
			if got.Seconds != tc.wantSeconds {
				t.Errorf("Seconds = %d, want %d", got.Seconds, tc.wantSeconds)
			}
			if got.Words != tc.wantWords {
				t.Errorf("Words = %d, want %d", got.Words, tc.wantWords)
			}
			if got.Assets != tc.in.Assets || got.Entries != tc.in.Entries {
				t.Errorf("counts = %d/%d, want %d/%d", got.Assets, got.Entries, tc.in.Assets, tc.in.Entries)
			}
			if got.Overridden {
				t.Error("Overridden = true, want false")
			}
		})
	}
}

// Seconds is computed from words alone and deliberately ignores asset and
// entry weighting, while Minutes includes it.
func TestCompute_SecondsExcludeEmbeddedObjectTime(t *testing.T) {
	plain := Compute(Input{Text: fiveWords}, defaultCfg())
	weighted := Compute(Input{Text: fiveWords, Assets: 6, Entries: 6}, defaultCfg())

	if weighted.Seconds != plain.Seconds {
		t.Errorf("Seconds changed with embedded objects: %d → %d", plain.Seconds, weighted.Seconds)
	}
	if !weighted.Minutes.GreaterThan(plain.Minutes) {
		t.Errorf("Minutes did not grow with embedded objects: %s → %s", plain.MinutesText(), weighted.MinutesText())
	}
}

func TestCompute_Deterministic(t *testing.T) {
	in := Input{Text: strings.Repeat("lorem ipsum dolor ", 97), Assets: 3, Entries: 2}
	cfg := types.Config{WordsPerMinute: 187, SecondsPerAsset: 7, SecondsPerEntry: 13}

	first := Compute(in, cfg)
	for i := 0; i < 10; i++ {
		if got := Compute(in, cfg); !got.Equal(first) {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestCompute_NeverNegative(t *testing.T) {
	for words := 0; words <= 500; words += 37 {
		for objects := 0; objects <= 5; objects++ {
			for _, wpm := range []int{1, 60, 225, 1000} {
				cfg := types.Config{WordsPerMinute: wpm, SecondsPerAsset: 10, SecondsPerEntry: 10}
				r := Compute(Input{Text: strings.Repeat("w ", words), Assets: objects, Entries: objects}, cfg)
				if r.Minutes.IsNegative() {
					t.Fatalf("words=%d objects=%d wpm=%d: negative minutes %s", words, objects, wpm, r.MinutesText())
				}
			}
		}
	}
}

func TestCompute_Guards(t *testing.T) {
	// Invalid rates must not make the calculator fail or go negative.
	cfg := types.Config{WordsPerMinute: 0, SecondsPerAsset: -10, SecondsPerEntry: -10}
	r := Compute(Input{Text: fiveWords, Assets: -1, Entries: 4}, cfg)

	if r.MinutesText() != "0.0" {
		t.Errorf("Minutes = %s, want 0.0", r.MinutesText())
	}
	if r.Assets != 0 {
		t.Errorf("Assets = %d, want 0", r.Assets)
	}
	if r.Seconds != 1 {
		t.Errorf("Seconds = %d, want 1 (default rate)", r.Seconds)
	}
}
