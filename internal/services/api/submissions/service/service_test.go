package service

import (
	"context"
	"testing"

	"slopmeter/internal/core/canon"
	perr "slopmeter/internal/platform/errors"
	"slopmeter/internal/platform/testkit"
	"slopmeter/internal/services/api/submissions/domain"
	subdom "slopmeter/internal/services/submissions/domain"
	subsvc "slopmeter/internal/services/submissions/service"
)

type call struct {
	kind     string
	lo, hi   float64
	question int
}

type fakeStore struct {
	rows  []subdom.Submission
	calls []call
}

func (f *fakeStore) InsertIfAbsent(context.Context, subdom.NewSubmission) (subdom.Submission, error) {
	return subdom.Submission{}, nil
}

func (f *fakeStore) ListByQuestion(_ context.Context, qid int) ([]subdom.Submission, error) {
	f.calls = append(f.calls, call{kind: "all", question: qid})
	return f.rows, nil
}

func (f *fakeStore) ListInRange(_ context.Context, qid int, lo, hi float64) ([]subdom.Submission, error) {
	f.calls = append(f.calls, call{kind: "range", lo: lo, hi: hi, question: qid})
	return nil, nil
}

func (f *fakeStore) ListNear(_ context.Context, qid int, target, pct float64) ([]subdom.Submission, error) {
	f.calls = append(f.calls, call{kind: "near", lo: target, hi: pct, question: qid})
	return nil, nil
}

func (f *fakeStore) GetByHash(_ context.Context, h string) (subdom.Submission, error) {
	for _, r := range f.rows {
		if r.TextHash == h {
			return r, nil
		}
	}
	return subdom.Submission{}, perr.NotFoundf("submission %s not found", h)
}

func (f *fakeStore) Distribution(_ context.Context, _ int) (subdom.Distribution, error) {
	return subsvc.BuildDistribution(f.rows), nil
}

func ptr(f float64) *float64 { return &f }

func TestRange_Dispatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		q    domain.RangeQuery
		want call
		err  bool
	}{
		{"bounds", domain.RangeQuery{Min: ptr(1), Max: ptr(5)}, call{kind: "range", lo: 1, hi: 5, question: 2}, false},
		{"bounds win over target", domain.RangeQuery{Min: ptr(1), Max: ptr(5), Target: ptr(100)}, call{kind: "range", lo: 1, hi: 5, question: 2}, false},
		{"target", domain.RangeQuery{Target: ptr(100), Range: 20}, call{kind: "near", lo: 100, hi: 20, question: 2}, false},
		{"min only", domain.RangeQuery{Min: ptr(1)}, call{}, true},
		{"nothing", domain.RangeQuery{}, call{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeStore{}
			_, err := New(f, f).Range(context.Background(), 2, tc.q)
			if tc.err {
				if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
					t.Fatalf("err = %v, want invalid argument", err)
				}
				return
			}
			if err != nil || len(f.calls) != 1 || f.calls[0] != tc.want {
				t.Fatalf("calls = %+v err = %v", f.calls, err)
			}
		})
	}
}

func TestByHash(t *testing.T) {
	t.Parallel()

	f := &fakeStore{rows: []subdom.Submission{
		{ID: 1, TextHash: canon.Hash(1, "a"), Text: "a", Perplexity: 10, QuestionID: 1},
		{ID: 2, TextHash: canon.Hash(1, "b"), Text: "b", Perplexity: 20, QuestionID: 1},
		{ID: 3, TextHash: canon.Hash(1, "c"), Text: "c", Perplexity: 30, QuestionID: 1},
		{ID: 4, TextHash: canon.Hash(1, "d"), Text: "d", Perplexity: 40, QuestionID: 1},
	}}
	s := New(f, f)

	d, err := s.ByHash(context.Background(), canon.Hash(1, "d"))
	if err != nil {
		t.Fatalf("ByHash: %v", err)
	}
	if d.Placement.Rank != 4 || d.Placement.Total != 4 {
		t.Fatalf("placement = %+v", d.Placement)
	}
	testkit.ApproxEqual(t, "slop", d.Placement.SlopPercentile, 0, 1e-9)
	if d.Verdict.Title != "SINGULARITY ACHIEVED" {
		t.Fatalf("verdict = %+v", d.Verdict)
	}
	if d.QuestionText != "What are you thinking about?" {
		t.Fatalf("question = %q", d.QuestionText)
	}
	if len(d.Neighbors.Lower) != 2 || d.Neighbors.Lower[0].Text != "b" || len(d.Neighbors.Higher) != 0 {
		t.Fatalf("neighbors = %+v", d.Neighbors)
	}

	if _, err := s.ByHash(context.Background(), canon.Hash(1, "zzz")); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("miss = %v", err)
	}
}
