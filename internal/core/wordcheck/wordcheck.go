// Package wordcheck decides whether sanitized text reads as real language or keyboard mashing
package wordcheck

import (
	"regexp"
	"strings"

	"slopmeter/internal/core/lexicon"
)

const (
	// Threshold is the minimum share of recognised tokens, in percent
	Threshold = 80.0
	// MaxExamples caps the invalid tokens reported back to the caller
	MaxExamples = 5
)

var tokenRe = regexp.MustCompile(`\b[a-z]+(?:'[a-z]+)?\b`)

// Result is the outcome of Check
type Result struct {
	Valid           bool     `json:"valid"`
	InvalidWords    []string `json:"invalid_words"`
	ValidPercentage float64  `json:"valid_percentage"`
}

// Checker classifies text against a Lexicon
type Checker struct {
	lex *lexicon.Lexicon
}

// New returns a Checker over lex, a nil lexicon panics
func New(lex *lexicon.Lexicon) *Checker {
	if lex == nil {
		panic("wordcheck: nil lexicon")
	}
	return &Checker{lex: lex}
}

// Tokens lower-cases s and returns its word tokens, a token may carry one apostrophe suffix
func Tokens(s string) []string {
	return tokenRe.FindAllString(strings.ToLower(s), -1)
}

// Check scores the tokens of sanitized
// invalid tokens are reported once each in first-seen order, at most MaxExamples
func (c *Checker) Check(sanitized string) Result {
	tokens := Tokens(sanitized)
	if len(tokens) == 0 {
		return Result{Valid: false, InvalidWords: []string{}, ValidPercentage: 0}
	}

	invalid := []string{}
	seen := map[string]struct{}{}
	valid := 0
	for _, tok := range tokens {
		if c.validToken(tok) {
			valid++
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		invalid = append(invalid, tok)
	}

	pct := float64(valid) / float64(len(tokens)) * 100
	if len(invalid) > MaxExamples {
		invalid = invalid[:MaxExamples]
	}
	return Result{
		Valid:           pct >= Threshold,
		InvalidWords:    invalid,
		ValidPercentage: pct,
	}
}

// validToken applies the dictionary, possessive and contraction rules in order
func (c *Checker) validToken(tok string) bool {
	if c.lex.Known(tok) {
		return true
	}
	if base, ok := strings.CutSuffix(tok, "'s"); ok && c.lex.Known(base) {
		return true
	}
	if head, _, ok := strings.Cut(tok, "'"); ok && head != "" && c.lex.Known(head) {
		return true
	}
	return false
}
