// Package domain holds DTOs for the read side of submissions
package domain

import (
	"slopmeter/internal/core/ranking"
	"slopmeter/internal/core/slop"
	subdom "slopmeter/internal/services/submissions/domain"
)

// RangeQuery selects rows either by explicit bounds or around a target
// Min and Max win when both are set, Range is a percentage and defaults to 10
type RangeQuery struct {
	Min    *float64
	Max    *float64
	Target *float64
	Range  float64
}

// Bounded reports whether explicit bounds were given
func (q RangeQuery) Bounded() bool { return q.Min != nil && q.Max != nil }

// Detail is one stored answer placed among its question's population
type Detail struct {
	Submission   subdom.Submission `json:"submission"`
	QuestionText string            `json:"question_text" example:"What did you do today?"`
	Placement    ranking.Placement `json:"placement"`
	Neighbors    ranking.Neighbors `json:"neighbors"`
	Histogram    ranking.Hist      `json:"histogram"`
	Verdict      slop.Verdict      `json:"verdict"`
}
