package compute

import "unicode"

// CountWords counts the words in text. A word is a maximal run of
// non-whitespace characters, except that every CJK character is a word by
// itself and punctuation directly after one does not start a new word.
func CountWords(text string) int {
	runes := []rune(text)
	at := func(i int) rune {
		if i < len(runes) {
			return runes[i]
		}
		return '\n'
	}

	start, end := 0, len(runes)-1
	for start <= end && isBound(runes[start]) {
		start++
	}
	for end >= start && isBound(runes[end]) {
		end--
	}

	var words int
	for i := start; i <= end; i++ {
		r, next := runes[i], at(i+1)
		if isCJK(r) || (!isBound(r) && (isBound(next) || isCJK(next))) {
			words++
		}
		if isCJK(r) {
			for i <= end && (isPunct(at(i+1)) || isBound(at(i+1))) {
				i++
			}
		}
	}
	return words
}

func isBound(r rune) bool { return unicode.IsSpace(r) }

func isPunct(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) }

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}
