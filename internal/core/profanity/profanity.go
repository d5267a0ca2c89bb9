// Package profanity flags and redacts blocked words
// two implementations share the Filter interface, one is picked once at startup by Resolve
package profanity

import (
	"fmt"
	"regexp"
	"strings"

	"slopmeter/internal/core/lexicon"
)

// Filter flags and redacts blocked words, matching whole words only
type Filter interface {
	IsProfane(text string) bool
	Clean(text string) string
}

// Modes accepted by Resolve
const (
	ModeLexicon  = "lexicon"
	ModeFallback = "fallback"
)

// FallbackWords is the fixed list behind Fallback
var FallbackWords = []string{"fuck", "shit", "damn", "ass", "bitch", "cunt", "dick", "piss"}

// Matcher is an Aho-Corasick Filter over a blocklist
type Matcher struct {
	ac    *automaton
	words int
}

var _ Filter = (*Matcher)(nil)

// NewMatcher builds a Matcher, entries are lower-cased and blanks skipped
func NewMatcher(words []string) *Matcher {
	m := &Matcher{ac: newAutomaton()}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		m.ac.add(w)
		m.words++
	}
	m.ac.build()
	return m
}

// Len returns the number of patterns
func (m *Matcher) Len() int { return m.words }

// IsProfane reports whether any blocked word appears as a whole word
func (m *Matcher) IsProfane(text string) bool {
	found := false
	lower := lowerASCII(text)
	m.ac.scan(lower, func(start, end int) bool {
		if wholeWord(lower, start, end) {
			found = true
			return false
		}
		return true
	})
	return found
}

// Clean masks every whole word match with '*'
func (m *Matcher) Clean(text string) string {
	var spans [][2]int
	lower := lowerASCII(text)
	m.ac.scan(lower, func(start, end int) bool {
		if wholeWord(lower, start, end) {
			spans = append(spans, [2]int{start, end})
		}
		return true
	})
	return mask(text, spans)
}

// Regexp is the fallback Filter, one word boundary regexp over a fixed list
type Regexp struct {
	re *regexp.Regexp
}

var _ Filter = (*Regexp)(nil)

// Fallback returns the Regexp filter over FallbackWords
func Fallback() *Regexp {
	quoted := make([]string, len(FallbackWords))
	for i, w := range FallbackWords {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return &Regexp{re: regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)}
}

// IsProfane reports whether a listed word appears
func (r *Regexp) IsProfane(text string) bool { return r.re.MatchString(text) }

// Clean masks listed words with '*'
func (r *Regexp) Clean(text string) string {
	return r.re.ReplaceAllStringFunc(text, func(m string) string { return strings.Repeat("*", len(m)) })
}

// Resolve picks the filter for mode and reports the mode actually used
// lexicon mode with an empty blocklist resolves to the fallback
func Resolve(mode string, lex *lexicon.Lexicon) (Filter, string, error) {
	switch mode {
	case "", ModeLexicon:
		if lex == nil {
			return Fallback(), ModeFallback, nil
		}
		block := lex.Blocklist()
		if len(block) == 0 {
			return Fallback(), ModeFallback, nil
		}
		return NewMatcher(block), ModeLexicon, nil
	case ModeFallback:
		return Fallback(), ModeFallback, nil
	default:
		return nil, "", fmt.Errorf("profanity: unknown mode %q", mode)
	}
}
