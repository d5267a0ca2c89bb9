// Package domain defines the types and ports of the submissions service
package domain

import (
	"time"

	"slopmeter/internal/core/ranking"
)

// DefaultNearPct is the half width of a ListNear window in percent of the target
const DefaultNearPct = 10.0

// Submission is one stored, scored answer
type Submission struct {
	ID         int64     `json:"id"`
	TextHash   string    `json:"text_hash"`
	Text       string    `json:"text"`
	Perplexity float64   `json:"perplexity"`
	QuestionID int       `json:"question_id"`
	ModelID    int       `json:"model_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewSubmission is the insert payload, Text is the sanitized answer before canonicalisation
type NewSubmission struct {
	Text       string
	Perplexity float64
	QuestionID int
	ModelID    int
}

// Entries projects submissions onto ranking entries
func Entries(xs []Submission) []ranking.Entry {
	out := make([]ranking.Entry, len(xs))
	for i, s := range xs {
		out[i] = ranking.Entry{ID: s.ID, Text: s.Text, Perplexity: s.Perplexity}
	}
	return out
}

// DistHistogram is a ranking.Hist that also reports its bucket width
type DistHistogram struct {
	Bins    []float64 `json:"bins"`
	Counts  []int     `json:"counts"`
	BinSize float64   `json:"bin_size"`
}

// Distribution summarises one question's population
// Stats is nil when there are no submissions
type Distribution struct {
	TotalSubmissions int              `json:"totalSubmissions"`
	Histogram        DistHistogram    `json:"histogram"`
	Stats            *ranking.Summary `json:"stats"`
}
