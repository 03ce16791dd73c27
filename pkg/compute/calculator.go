package compute

import (
	"math"

	"github.com/readingtime/readingtime/pkg/content"
	"github.com/readingtime/readingtime/pkg/types"
)

// Input holds the normalized values fed into the calculator.
type Input struct {
	// Text is the plain text to count words in.
	Text string

	// Assets and Entries are the embedded objects found in the source.
	// Negative counts are treated as zero.
	Assets  int
	Entries int
}

// InputFrom adapts a normalizer result to calculator input.
func InputFrom(n content.Normalized) Input {
	return Input{Text: n.Text, Assets: n.Assets, Entries: n.Entries}
}

// Compute calculates the reading time for in under cfg. It is a pure
// function: identical arguments always produce an identical Result.
//
// A Config with a non-positive WordsPerMinute falls back to the default rate,
// and negative per-object rates count as zero, so Compute is total.
func Compute(in Input, cfg types.Config) types.Result {
	wpm := cfg.WordsPerMinute
	if wpm <= 0 {
		wpm = types.DefaultWordsPerMinute
	}
	assets := nonNegative(in.Assets)
	entries := nonNegative(in.Entries)

	words := CountWords(in.Text)
	base := float64(words) / float64(wpm)
	seconds := int(math.Round(float64(words) / (float64(wpm) / 60)))

	weighted := base +
		float64(entries*nonNegative(cfg.SecondsPerEntry))/60 +
		float64(assets*nonNegative(cfg.SecondsPerAsset))/60

	return types.Result{
		Minutes: types.RoundMinutes(weighted),
		Seconds: seconds,
		Words:   words,
		Assets:  assets,
		Entries: entries,
	}
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
