// Package repo provides postgres access for submissions
package repo

import (
	"context"

	"slopmeter/internal/modkit/repokit"
	perr "slopmeter/internal/platform/errors"
	"slopmeter/internal/platform/store"
	"slopmeter/internal/services/submissions/domain"
)

// Storage is the submissions table
type Storage interface {
	// Insert adds a row, inserted is false when text_hash already existed and the stored row is returned
	Insert(ctx context.Context, hash, text string, perplexity float64, questionID, modelID int) (s domain.Submission, inserted bool, err error)
	ByQuestion(ctx context.Context, questionID int) ([]domain.Submission, error)
	InRange(ctx context.Context, questionID int, min, max float64) ([]domain.Submission, error)
	ByHash(ctx context.Context, hash string) (domain.Submission, error)
}

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

const columns = `id, text_hash, text, perplexity, question_id, model_id, created_at`

const (
	sqlInsert = `INSERT INTO text_submissions (text_hash, text, perplexity, question_id, model_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + columns

	sqlByHash = `SELECT ` + columns + ` FROM text_submissions WHERE text_hash = $1`

	sqlByQuestion = `SELECT ` + columns + ` FROM text_submissions
WHERE question_id = $1
ORDER BY perplexity ASC, id ASC`

	sqlInRange = `SELECT ` + columns + ` FROM text_submissions
WHERE question_id = $1 AND perplexity >= $2 AND perplexity <= $3
ORDER BY perplexity ASC, id ASC`
)

func scan(r store.Row) (domain.Submission, error) {
	var s domain.Submission
	err := r.Scan(&s.ID, &s.TextHash, &s.Text, &s.Perplexity, &s.QuestionID, &s.ModelID, &s.CreatedAt)
	return s, err
}

// Insert implements Storage
// a concurrent writer of the same hash loses on the unique index and re-reads the winner's row
func (p *pg) Insert(ctx context.Context, hash, text string, perplexity float64, questionID, modelID int) (domain.Submission, bool, error) {
	s, err := store.One(ctx, p.q, scan, sqlInsert, hash, text, perplexity, questionID, modelID)
	if err == nil {
		return s, true, nil
	}
	if !perr.IsDuplicateKey(err) {
		return domain.Submission{}, false, perr.FromPostgres(err, "insert submission")
	}
	s, err = p.ByHash(ctx, hash)
	if err != nil {
		return domain.Submission{}, false, err
	}
	return s, false, nil
}

// ByHash implements Storage
func (p *pg) ByHash(ctx context.Context, hash string) (domain.Submission, error) {
	s, err := store.One(ctx, p.q, scan, sqlByHash, hash)
	switch {
	case err == nil:
		return s, nil
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		return domain.Submission{}, perr.NotFoundf("submission %s not found", hash)
	default:
		return domain.Submission{}, perr.FromPostgres(err, "get submission by hash")
	}
}

// ByQuestion implements Storage
func (p *pg) ByQuestion(ctx context.Context, questionID int) ([]domain.Submission, error) {
	xs, err := store.Many(ctx, p.q, scan, sqlByQuestion, questionID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list submissions")
	}
	return xs, nil
}

// InRange implements Storage
func (p *pg) InRange(ctx context.Context, questionID int, min, max float64) ([]domain.Submission, error) {
	xs, err := store.Many(ctx, p.q, scan, sqlInRange, questionID, min, max)
	if err != nil {
		return nil, perr.FromPostgres(err, "list submissions in range")
	}
	return xs, nil
}
