// Package service contains the analyze workflow
// admission, scoring, storage and ranking run strictly in that order per request
package service

import (
	"context"
	"errors"

	"slopmeter/internal/adapters/inference"
	"slopmeter/internal/core/admission"
	"slopmeter/internal/core/answerspan"
	"slopmeter/internal/core/canon"
	"slopmeter/internal/core/questions"
	"slopmeter/internal/core/ranking"
	"slopmeter/internal/core/slop"
	perr "slopmeter/internal/platform/errors"
	"slopmeter/internal/platform/logger"
	"slopmeter/internal/platform/metrics"
	"slopmeter/internal/services/api/analyze/domain"
	"slopmeter/internal/services/audit"
	subdom "slopmeter/internal/services/submissions/domain"
)

// Service defines the service contract for analyze
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	gate   domain.Admitter
	scorer inference.Scorer
	store  subdom.StorePort
	audit  audit.Sink
}

var _ Service = (*Svc)(nil)

// New creates the analyze service, a nil sink discards audit events
func New(gate domain.Admitter, scorer inference.Scorer, store subdom.StorePort, sink audit.Sink) *Svc {
	if gate == nil || scorer == nil || store == nil {
		panic("analyze.Service requires a gate, a scorer and a store")
	}
	if sink == nil {
		sink = audit.Noop{}
	}
	return &Svc{gate: gate, scorer: scorer, store: store, audit: sink}
}

// admit runs the gate and records the decision
func (s *Svc) admit(ctx context.Context, raw string, questionID int) admission.Result {
	res := s.gate.Admit(raw)

	outcome := string(res.Stage)
	if res.Valid {
		outcome = "valid"
	}
	metrics.Admissions.WithLabelValues(outcome).Inc()

	ev := audit.Event{QuestionID: questionID, Stage: outcome, Valid: res.Valid, Length: len(res.Sanitized)}
	if res.Valid {
		ev.TextHash = canon.Hash(questionID, res.Sanitized)
	}
	s.audit.Record(ctx, ev)

	if !res.Valid {
		logger.C(ctx).Debug().Str("stage", outcome).Int("question_id", questionID).Msg("text rejected")
	}
	return res
}

func rejected(res admission.Result) error {
	return perr.WithField(perr.New(perr.ErrorCodeRejected, res.Error), "text")
}

// Analyze implements domain.ServicePort
func (s *Svc) Analyze(ctx context.Context, in domain.AnalyzeRequest) (domain.AnalyzeResponse, error) {
	ctx = logger.WithQuestion(ctx, in.QuestionID)

	res := s.admit(ctx, in.Text, in.QuestionID)
	if !res.Valid {
		return domain.AnalyzeResponse{}, rejected(res)
	}

	scored, err := s.scorer.Infer(ctx, questions.Prompt(in.QuestionID, res.Sanitized))
	if err != nil {
		return domain.AnalyzeResponse{}, err
	}

	sub, err := s.store.InsertIfAbsent(ctx, subdom.NewSubmission{
		Text:       res.Sanitized,
		Perplexity: scored.TotalPerplexity,
		QuestionID: in.QuestionID,
		ModelID:    s.scorer.ModelID(),
	})
	if err != nil {
		return domain.AnalyzeResponse{}, err
	}

	pop, err := s.store.ListByQuestion(ctx, in.QuestionID)
	if err != nil {
		return domain.AnalyzeResponse{}, err
	}
	st, err := ranking.Rank(sub.ID, subdom.Entries(pop), ranking.AnalyzeBins)
	if err != nil {
		if errors.Is(err, ranking.ErrTargetMissing) {
			return domain.AnalyzeResponse{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "submission %d missing from question %d", sub.ID, in.QuestionID)
		}
		return domain.AnalyzeResponse{}, err
	}

	logger.C(ctx).Info().
		Int64("submission_id", sub.ID).
		Int("rank", st.Placement.Rank).
		Int("total", st.Placement.Total).
		Float64("perplexity", sub.Perplexity).
		Msg("analysis complete")

	return domain.AnalyzeResponse{
		Perplexity:   sub.Perplexity,
		ByToken:      answerspan.Extract(scored.ByToken, answerspan.DefaultMarker),
		Placement:    st.Placement,
		Neighbors:    st.Neighbors,
		Histogram:    st.Histogram,
		SubmissionID: sub.ID,
		TextHash:     sub.TextHash,
		Verdict:      slop.Message(st.Placement.SlopPercentile),
	}, nil
}

// Validate implements domain.ServicePort, nothing is recorded
func (s *Svc) Validate(_ context.Context, in domain.TextRequest) admission.Result {
	return s.gate.Admit(in.Text)
}

// Perplexity implements domain.ServicePort, the text goes to inference verbatim
func (s *Svc) Perplexity(ctx context.Context, in domain.PerplexityRequest) (inference.Result, error) {
	return s.scorer.Infer(ctx, in.Text)
}

// Submit implements domain.ServicePort
func (s *Svc) Submit(ctx context.Context, in domain.SubmitRequest) (subdom.Submission, error) {
	res := s.admit(ctx, in.Text, in.QuestionID)
	if !res.Valid {
		return subdom.Submission{}, rejected(res)
	}
	return s.store.InsertIfAbsent(ctx, subdom.NewSubmission{
		Text:       res.Sanitized,
		Perplexity: in.Perplexity,
		QuestionID: in.QuestionID,
		ModelID:    in.ModelID,
	})
}
