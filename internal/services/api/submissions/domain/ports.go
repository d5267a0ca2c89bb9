package domain

import (
	"context"

	subdom "slopmeter/internal/services/submissions/domain"
)

// ServicePort defines the read contract for submissions
type ServicePort interface {
	List(ctx context.Context, questionID int) ([]subdom.Submission, error)
	Range(ctx context.Context, questionID int, q RangeQuery) ([]subdom.Submission, error)
	ByHash(ctx context.Context, hash string) (Detail, error)
	Distribution(ctx context.Context, questionID int) (subdom.Distribution, error)
}
