// Package service implements the submission store and per question distributions
package service

import (
	"context"
	"strconv"

	"slopmeter/internal/core/canon"
	"slopmeter/internal/core/ranking"
	"slopmeter/internal/modkit/repokit"
	"slopmeter/internal/platform/cache"
	perr "slopmeter/internal/platform/errors"
	"slopmeter/internal/platform/logger"
	"slopmeter/internal/platform/metrics"
	"slopmeter/internal/services/submissions/domain"
	"slopmeter/internal/services/submissions/repo"
)

// Service implements domain.StorePort and domain.DistributionPort
type Service struct {
	Repo  repo.Storage
	cache cache.Cache
}

var (
	_ domain.StorePort        = (*Service)(nil)
	_ domain.DistributionPort = (*Service)(nil)
)

// New binds the repo to db, a nil cache disables caching
func New(db repokit.Queryer, binder repokit.Binder[repo.Storage], c cache.Cache) *Service {
	if binder == nil {
		panic("submissions.Service requires a non nil Repo binder")
	}
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{Repo: repokit.MustBind(binder, db), cache: c}
}

// DistributionKey is the cache key of a question's distribution
func DistributionKey(questionID int) string { return "dist:" + strconv.Itoa(questionID) }

// InsertIfAbsent implements domain.StorePort
func (s *Service) InsertIfAbsent(ctx context.Context, in domain.NewSubmission) (domain.Submission, error) {
	text := canon.Text(in.Text)
	row, inserted, err := s.Repo.Insert(ctx, canon.Hash(in.QuestionID, in.Text), text, in.Perplexity, in.QuestionID, in.ModelID)
	if err != nil {
		return domain.Submission{}, err
	}
	metrics.Submissions.WithLabelValues(strconv.Itoa(in.QuestionID), strconv.FormatBool(!inserted)).Inc()

	if inserted {
		// a missed delete leaves the entry until its TTL
		if err := s.cache.Delete(ctx, DistributionKey(in.QuestionID)); err != nil {
			logger.C(ctx).Warn().Err(err).Int("question_id", in.QuestionID).Msg("distribution cache invalidation failed")
		}
	} else {
		logger.C(ctx).Debug().Str("text_hash", row.TextHash).Int64("id", row.ID).Msg("submission already stored")
	}
	return row, nil
}

// ListByQuestion implements domain.StorePort
func (s *Service) ListByQuestion(ctx context.Context, questionID int) ([]domain.Submission, error) {
	return s.Repo.ByQuestion(ctx, questionID)
}

// ListInRange implements domain.StorePort
func (s *Service) ListInRange(ctx context.Context, questionID int, min, max float64) ([]domain.Submission, error) {
	if min > max {
		return nil, perr.InvalidArgf("min %g is greater than max %g", min, max)
	}
	return s.Repo.InRange(ctx, questionID, min, max)
}

// ListNear implements domain.StorePort, pct <= 0 means domain.DefaultNearPct
func (s *Service) ListNear(ctx context.Context, questionID int, target, pct float64) ([]domain.Submission, error) {
	if pct <= 0 {
		pct = domain.DefaultNearPct
	}
	lo, hi := target*(1-pct/100), target*(1+pct/100)
	if lo > hi {
		lo, hi = hi, lo
	}
	return s.Repo.InRange(ctx, questionID, lo, hi)
}

// GetByHash implements domain.StorePort
// hashes are compared in their canonical lowercase form
func (s *Service) GetByHash(ctx context.Context, hash string) (domain.Submission, error) {
	h := canon.Text(hash)
	if !canon.ValidHash(h) {
		return domain.Submission{}, perr.NotFoundf("submission %s not found", hash)
	}
	return s.Repo.ByHash(ctx, h)
}

// Distribution implements domain.DistributionPort
func (s *Service) Distribution(ctx context.Context, questionID int) (domain.Distribution, error) {
	key := DistributionKey(questionID)

	var d domain.Distribution
	if ok, err := s.cache.GetJSON(ctx, key, &d); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("distribution cache read failed")
	} else if ok {
		return d, nil
	}

	rows, err := s.Repo.ByQuestion(ctx, questionID)
	if err != nil {
		return domain.Distribution{}, err
	}
	d = BuildDistribution(rows)

	if err := s.cache.SetJSON(ctx, key, d); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("distribution cache write failed")
	}
	return d, nil
}

// BuildDistribution summarises rows into ranking.DistributionBins buckets
func BuildDistribution(rows []domain.Submission) domain.Distribution {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Perplexity
	}
	h := ranking.Histogram(values, ranking.DistributionBins)
	d := domain.Distribution{
		TotalSubmissions: len(rows),
		Histogram: domain.DistHistogram{
			Bins:    h.Bins,
			Counts:  h.Counts,
			BinSize: ranking.BinSize(values, ranking.DistributionBins),
		},
	}
	if len(values) > 0 {
		sum := ranking.Describe(values)
		d.Stats = &sum
	}
	return d
}
