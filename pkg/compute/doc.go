// Package compute derives reading time from normalized content.
//
// calculator.go provides the pure Compute(Input, Config) function:
//
//	minutes = round1(words/wpm + entries*secondsPerEntry/60 + assets*secondsPerAsset/60)
//	seconds = round(words / (wpm/60))
//
// Seconds only ever reflects the words. Asset and entry time is added to
// minutes alone.
//
// words.go counts words: runs of non-space characters, with each CJK
// character counted on its own.
//
// engine.go provides the stateful Engine that normalizes a source, computes
// its Result and remembers the latest estimate per locale. Engine.Process
// accepts an injectable time.Time so tests are deterministic.
package compute
