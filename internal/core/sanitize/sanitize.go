// Package sanitize cleans untrusted answer text before it is validated, scored or stored
// Pipeline order
// 1 strip <...> tag spans, text between tags survives
// 2 strip javascript: and on<word>= handler patterns, any case
// 3 strip control and null characters
// 4 strip everything outside printable ASCII 0x20..0x7E
// 5 collapse runs of 3+ identical characters to 2, then runs of . ! ? ' to 1
// 6 trim and collapse whitespace runs to one space
//
// The pipeline is repeated until its output stops changing, so Text(Text(s)) == Text(s)
// even when a removal joins the halves of a pattern such as "javajavascript:script:"
package sanitize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var (
	tagSpan  = regexp.MustCompile(`<[^>]*>`)
	jsScheme = regexp.MustCompile(`(?i)javascript:`)
	onEvent  = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// chainPool holds transformer chains for steps 3 and 4
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.In(unicode.Cc)),
			runes.Remove(runes.Predicate(func(r rune) bool { return r < 0x20 || r > 0x7E })),
		)
	},
}

// Text returns the sanitized form of raw, it never fails
func Text(raw string) string {
	s := raw
	for {
		next := pass(s)
		// every step only removes characters, so equal length means a fixed point
		if len(next) == len(s) {
			return next
		}
		s = next
	}
}

func pass(s string) string {
	if s == "" {
		return s
	}
	s = tagSpan.ReplaceAllString(s, "")
	s = jsScheme.ReplaceAllString(s, "")
	s = onEvent.ReplaceAllString(s, "")
	s = printable(s)
	s = collapseRuns(s)
	return collapseSpaces(s)
}

// printable drops control and non printable ASCII runes
// invalid UTF-8 arrives at the predicate as RuneError and is dropped too
func printable(s string) string {
	if isPrintableASCII(s) {
		return s
	}
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return asciiOnly(s)
	}
	return out
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

// asciiOnly is the byte level equivalent of the transform chain
func asciiOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x20 && s[i] <= 0x7E {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func squeezable(c byte) bool {
	return c == '.' || c == '!' || c == '?' || c == '\''
}

// collapseRuns keeps at most 2 of any repeated byte and 1 of repeated . ! ? '
// input is printable ASCII so bytes and characters coincide
func collapseRuns(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		j := i
		for j < len(s) && s[j] == s[i] {
			j++
		}
		keep := j - i
		switch {
		case squeezable(s[i]):
			keep = 1
		case keep > 2:
			keep = 2
		}
		for k := 0; k < keep; k++ {
			b.WriteByte(s[i])
		}
		i = j
	}
	return b.String()
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
