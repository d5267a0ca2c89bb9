// Package admission decides whether an answer may reach inference and storage
// the gate is pure, it never fails and never touches the network
package admission

import (
	"fmt"
	"strings"

	"slopmeter/internal/core/profanity"
	"slopmeter/internal/core/sanitize"
	"slopmeter/internal/core/wordcheck"
)

// Default length limits in characters of sanitized text
const (
	DefaultMinLength = 16
	DefaultMaxLength = 256
)

// Rejection messages
const (
	MsgEmpty   = "Text is empty or contains only invalid characters"
	MsgProfane = "Text contains inappropriate language. Please keep it clean!"
)

// Stage names the step that rejected a text, used as a metric label
type Stage string

const (
	StageNone      Stage = ""
	StageEmpty     Stage = "empty"
	StageTooShort  Stage = "too_short"
	StageTooLong   Stage = "too_long"
	StageGibberish Stage = "gibberish"
	StageProfane   Stage = "profane"
)

// Limits bounds the sanitized length
type Limits struct {
	MinLength int
	MaxLength int
}

// DefaultLimits returns 16..256
func DefaultLimits() Limits {
	return Limits{MinLength: DefaultMinLength, MaxLength: DefaultMaxLength}
}

// Result is the outcome of Admit
// Sanitized is always set, Error is set iff Valid is false
type Result struct {
	Valid     bool   `json:"valid"`
	Sanitized string `json:"sanitized"`
	Error     string `json:"error,omitempty"`
	Stage     Stage  `json:"-"`
}

// Gate runs sanitize, length, lexical and profanity checks in that order
type Gate struct {
	limits Limits
	words  *wordcheck.Checker
	filter profanity.Filter
}

// New builds a Gate, zero limits take the defaults
func New(limits Limits, words *wordcheck.Checker, filter profanity.Filter) *Gate {
	if words == nil || filter == nil {
		panic("admission: nil checker or filter")
	}
	if limits.MinLength <= 0 {
		limits.MinLength = DefaultMinLength
	}
	if limits.MaxLength <= 0 {
		limits.MaxLength = DefaultMaxLength
	}
	return &Gate{limits: limits, words: words, filter: filter}
}

// Limits returns the effective limits
func (g *Gate) Limits() Limits { return g.limits }

// Admit short-circuits on the first failing check
func (g *Gate) Admit(raw string) Result {
	s := sanitize.Text(raw)
	if s == "" {
		return reject(StageEmpty, "", MsgEmpty)
	}

	// sanitized text is ASCII so byte length is character length
	if n := len(s); n < g.limits.MinLength {
		return reject(StageTooShort, s, fmt.Sprintf("Text is too short. Minimum %d characters required (currently %d).", g.limits.MinLength, n))
	}
	if len(s) > g.limits.MaxLength {
		return reject(StageTooLong, s[:g.limits.MaxLength], fmt.Sprintf("Text is too long. Maximum %d characters allowed.", g.limits.MaxLength))
	}

	if wc := g.words.Check(s); !wc.Valid {
		return reject(StageGibberish, s, GibberishMessage(wc.InvalidWords))
	}

	if g.filter.IsProfane(s) {
		return reject(StageProfane, g.filter.Clean(s), MsgProfane)
	}

	return Result{Valid: true, Sanitized: s}
}

// GibberishMessage lists up to the first examples given
func GibberishMessage(examples []string) string {
	var eg string
	if len(examples) > 0 {
		eg = ` (e.g., "` + strings.Join(examples, `", "`) + `")`
	}
	return "Please avoid excessive gibberish or keyboard mashing. Most words should be recognizable English" + eg + ". (Names and proper nouns are okay!)"
}

func reject(stage Stage, sanitized, msg string) Result {
	return Result{Valid: false, Sanitized: sanitized, Error: msg, Stage: stage}
}
