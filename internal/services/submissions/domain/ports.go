package domain

import "context"

// StorePort is the submission store
type StorePort interface {
	// InsertIfAbsent stores the canonical form of in, a known text returns the existing row
	InsertIfAbsent(ctx context.Context, in NewSubmission) (Submission, error)
	// ListByQuestion returns every row for the question by ascending perplexity then id
	ListByQuestion(ctx context.Context, questionID int) ([]Submission, error)
	// ListInRange is ListByQuestion restricted to min <= perplexity <= max
	ListInRange(ctx context.Context, questionID int, min, max float64) ([]Submission, error)
	// ListNear is ListInRange over target +/- pct percent
	ListNear(ctx context.Context, questionID int, target, pct float64) ([]Submission, error)
	// GetByHash looks a row up by text hash
	GetByHash(ctx context.Context, hash string) (Submission, error)
}

// DistributionPort reports per question distributions
type DistributionPort interface {
	Distribution(ctx context.Context, questionID int) (Distribution, error)
}
