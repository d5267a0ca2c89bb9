// Package service implements the read side of submissions
package service

import (
	"context"

	"slopmeter/internal/core/questions"
	"slopmeter/internal/core/ranking"
	"slopmeter/internal/core/slop"
	perr "slopmeter/internal/platform/errors"
	"slopmeter/internal/services/api/submissions/domain"
	subdom "slopmeter/internal/services/submissions/domain"
)

// Service defines the service contract for submissions reads
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	store subdom.StorePort
	dist  subdom.DistributionPort
}

var _ Service = (*Svc)(nil)

// New creates a read service over the submission store
func New(store subdom.StorePort, dist subdom.DistributionPort) *Svc {
	if store == nil || dist == nil {
		panic("submissions read service requires a store and a distribution port")
	}
	return &Svc{store: store, dist: dist}
}

// List implements domain.ServicePort
func (s *Svc) List(ctx context.Context, questionID int) ([]subdom.Submission, error) {
	return s.store.ListByQuestion(ctx, questionID)
}

// Range implements domain.ServicePort
func (s *Svc) Range(ctx context.Context, questionID int, q domain.RangeQuery) ([]subdom.Submission, error) {
	switch {
	case q.Bounded():
		return s.store.ListInRange(ctx, questionID, *q.Min, *q.Max)
	case q.Target != nil:
		return s.store.ListNear(ctx, questionID, *q.Target, q.Range)
	default:
		return nil, perr.InvalidArgf("either min and max or target is required")
	}
}

// ByHash implements domain.ServicePort
func (s *Svc) ByHash(ctx context.Context, hash string) (domain.Detail, error) {
	row, err := s.store.GetByHash(ctx, hash)
	if err != nil {
		return domain.Detail{}, err
	}
	pop, err := s.store.ListByQuestion(ctx, row.QuestionID)
	if err != nil {
		return domain.Detail{}, err
	}
	st, err := ranking.Rank(row.ID, subdom.Entries(pop), ranking.AnalyzeBins)
	if err != nil {
		return domain.Detail{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "submission %d missing from question %d", row.ID, row.QuestionID)
	}
	return domain.Detail{
		Submission:   row,
		QuestionText: questions.Text(row.QuestionID),
		Placement:    st.Placement,
		Neighbors:    st.Neighbors,
		Histogram:    st.Histogram,
		Verdict:      slop.Message(st.Placement.SlopPercentile),
	}, nil
}

// Distribution implements domain.ServicePort
func (s *Svc) Distribution(ctx context.Context, questionID int) (subdom.Distribution, error) {
	return s.dist.Distribution(ctx, questionID)
}
