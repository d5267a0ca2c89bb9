package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"slopmeter/internal/core/canon"
	"slopmeter/internal/modkit/repokit"
	"slopmeter/internal/platform/cache"
	perr "slopmeter/internal/platform/errors"
	"slopmeter/internal/platform/testkit"
	"slopmeter/internal/services/submissions/domain"
	"slopmeter/internal/services/submissions/repo"

	"github.com/go-redis/redismock/v9"
)

// memRepo is an in-memory repo.Storage keyed by hash
type memRepo struct {
	rows   []domain.Submission
	lastLo float64
	lastHi float64
	err    error
}

func (m *memRepo) Insert(_ context.Context, hash, text string, p float64, qid, model int) (domain.Submission, bool, error) {
	if m.err != nil {
		return domain.Submission{}, false, m.err
	}
	for _, r := range m.rows {
		if r.TextHash == hash {
			return r, false, nil
		}
	}
	s := domain.Submission{ID: int64(len(m.rows) + 1), TextHash: hash, Text: text, Perplexity: p, QuestionID: qid, ModelID: model, CreatedAt: time.Now()}
	m.rows = append(m.rows, s)
	return s, true, nil
}

func (m *memRepo) ByQuestion(_ context.Context, qid int) ([]domain.Submission, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []domain.Submission{}
	for _, r := range m.rows {
		if r.QuestionID == qid {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Perplexity < out[j].Perplexity })
	return out, nil
}

func (m *memRepo) InRange(ctx context.Context, qid int, lo, hi float64) ([]domain.Submission, error) {
	m.lastLo, m.lastHi = lo, hi
	all, _ := m.ByQuestion(ctx, qid)
	out := []domain.Submission{}
	for _, r := range all {
		if r.Perplexity >= lo && r.Perplexity <= hi {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) ByHash(_ context.Context, hash string) (domain.Submission, error) {
	for _, r := range m.rows {
		if r.TextHash == hash {
			return r, nil
		}
	}
	return domain.Submission{}, perr.NotFoundf("submission %s not found", hash)
}

// nopQ satisfies repokit.Queryer for binders that ignore it
type nopQ struct{ repokit.Queryer }

func newSvc(m *memRepo, c cache.Cache) *Service {
	return New(nopQ{}, repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return m }), c)
}

func TestInsertIfAbsent_CanonicalAndIdempotent(t *testing.T) {
	t.Parallel()

	m := &memRepo{}
	s := newSvc(m, nil)
	ctx := context.Background()

	a, err := s.InsertIfAbsent(ctx, domain.NewSubmission{Text: "Hello There Friend Of Mine", Perplexity: 40, QuestionID: 0})
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	b, err := s.InsertIfAbsent(ctx, domain.NewSubmission{Text: "hello there friend of mine", Perplexity: 99, QuestionID: 0})
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if a.ID != b.ID || a.TextHash != b.TextHash || b.Perplexity != 40 {
		t.Fatalf("resubmission should return the first row: %+v vs %+v", a, b)
	}
	if a.Text != "hello there friend of mine" || a.TextHash != canon.Hash(0, "hello there friend of mine") {
		t.Fatalf("stored form = %+v", a)
	}
	if len(m.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(m.rows))
	}
}

func TestInsertIfAbsent_InvalidatesDistribution(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	s := newSvc(&memRepo{}, cache.New(rdb, time.Minute, "sm:"))

	mock.ExpectDel("sm:dist:2").SetVal(1)
	if _, err := s.InsertIfAbsent(context.Background(), domain.NewSubmission{Text: "x", QuestionID: 2}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// duplicates leave the cache alone
	if _, err := s.InsertIfAbsent(context.Background(), domain.NewSubmission{Text: "X", QuestionID: 2}); err != nil {
		t.Fatalf("dup insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("redis expectations: %v", err)
	}
}

func TestInsertIfAbsent_CacheErrorIgnored(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	s := newSvc(&memRepo{}, cache.New(rdb, time.Minute, "sm:"))
	mock.ExpectDel("sm:dist:0").SetErr(errors.New("conn reset"))

	if _, err := s.InsertIfAbsent(context.Background(), domain.NewSubmission{Text: "y"}); err != nil {
		t.Fatalf("cache failure leaked: %v", err)
	}
}

func TestListNear(t *testing.T) {
	t.Parallel()

	m := &memRepo{}
	s := newSvc(m, nil)
	for i, p := range []float64{89, 90, 100, 110, 111} {
		_, _ = s.InsertIfAbsent(context.Background(), domain.NewSubmission{Text: string(rune('a' + i)), Perplexity: p})
	}

	xs, err := s.ListNear(context.Background(), 0, 100, 0)
	if err != nil {
		t.Fatalf("ListNear: %v", err)
	}
	testkit.ApproxEqual(t, "lo", m.lastLo, 90, 1e-9)
	testkit.ApproxEqual(t, "hi", m.lastHi, 110, 1e-9)
	if len(xs) != 3 {
		t.Fatalf("got %d rows, want 3", len(xs))
	}

	if _, err := s.ListInRange(context.Background(), 0, 5, 1); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("min > max err = %v", err)
	}
}

func TestGetByHash(t *testing.T) {
	t.Parallel()

	s := newSvc(&memRepo{}, nil)
	row, _ := s.InsertIfAbsent(context.Background(), domain.NewSubmission{Text: "hello"})

	got, err := s.GetByHash(context.Background(), "5D41402ABC4B2A76B9719D911017C592")
	if err != nil || got.ID != row.ID {
		t.Fatalf("upper case hash lookup = %+v, %v", got, err)
	}
	for _, bad := range []string{"", "zzz", "5d41402abc4b2a76b9719d911017c593"} {
		if _, err := s.GetByHash(context.Background(), bad); !perr.IsCode(err, perr.ErrorCodeNotFound) {
			t.Fatalf("GetByHash(%q) err = %v", bad, err)
		}
	}
}

func TestDistribution(t *testing.T) {
	t.Parallel()

	s := newSvc(&memRepo{}, nil)
	d, err := s.Distribution(context.Background(), 0)
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	if d.TotalSubmissions != 0 || d.Stats != nil || len(d.Histogram.Bins) != 0 {
		t.Fatalf("empty distribution = %+v", d)
	}
	raw, _ := json.Marshal(d)
	testkit.MustContain(t, string(raw), `"stats":null`)

	for i, p := range []float64{4, 1, 3, 2} {
		_, _ = s.InsertIfAbsent(context.Background(), domain.NewSubmission{Text: string(rune('a' + i)), Perplexity: p})
	}
	d, _ = s.Distribution(context.Background(), 0)
	if d.TotalSubmissions != 4 || d.Stats == nil || d.Stats.Median != 3 {
		t.Fatalf("distribution = %+v", d)
	}
	testkit.ApproxEqual(t, "mean", d.Stats.Mean, 2.5, 1e-12)
	sum := 0
	for _, c := range d.Histogram.Counts {
		sum += c
	}
	if len(d.Histogram.Bins) != 10 || sum != 4 {
		t.Fatalf("histogram = %+v", d.Histogram)
	}
}

func TestDistribution_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	m := &memRepo{err: errors.New("repo must not be read")}
	s := newSvc(m, cache.New(rdb, time.Minute, "sm:"))

	mock.ExpectGet("sm:dist:1").SetVal(`{"totalSubmissions":7,"histogram":{"bins":[1],"counts":[7],"bin_size":0},"stats":null}`)
	d, err := s.Distribution(context.Background(), 1)
	if err != nil || d.TotalSubmissions != 7 {
		t.Fatalf("cache hit = %+v, %v", d, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("redis expectations: %v", err)
	}
}
