package profanity

import (
	"unicode"
	"unicode/utf8"
)

// isWord reports whether r continues a word for boundary checks
// letters, numbers, combining marks and connector punctuation are word runes
// apostrophe, hyphen and other punctuation are not
func isWord(r rune) bool {
	if r == utf8.RuneError || r == 0 {
		return false
	}
	return unicode.IsLetter(r) ||
		unicode.IsNumber(r) ||
		unicode.In(r, unicode.Mn, unicode.Pc)
}

// wholeWord reports whether s[start:end] is bounded by non word runes
func wholeWord(s []byte, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRune(s[:start]); isWord(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRune(s[end:]); isWord(r) {
			return false
		}
	}
	return true
}

// lowerASCII lowers ASCII letters and leaves every other byte in place
// offsets in the result line up with the input
func lowerASCII(s string) []byte {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return b
}

// mask replaces each span with '*' of equal length
func mask(s string, spans [][2]int) string {
	if len(spans) == 0 {
		return s
	}
	b := []byte(s)
	for _, sp := range spans {
		for i := sp[0]; i < sp[1]; i++ {
			b[i] = '*'
		}
	}
	return string(b)
}
