// Package http provides http transport for analyze
package http

import (
	stdhttp "net/http"

	"slopmeter/internal/modkit/httpkit"
	"slopmeter/internal/services/api/analyze/domain"
	svc "slopmeter/internal/services/api/analyze/service"
)

// Register mounts analyze endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.AnalyzeRequest](r, "/analyze", h.analyze)
	httpkit.PostJSON[domain.TextRequest](r, "/validate", h.validate)
	httpkit.PostJSON[domain.PerplexityRequest](r, "/perplexity", h.perplexity)
	httpkit.PostJSON[domain.SubmitRequest](r, "/submit", h.submit)
}

type handlers struct{ svc svc.Service }

// @Summary Admit, score, store and rank an answer
// @Tags analyze
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeRequest true "Answer"
// @Success 200 {object} domain.AnalyzeResponse
// @Failure 422 {object} httpkit.Envelope "rejected by admission"
// @Failure 503 {object} httpkit.Envelope "inference unavailable"
// @Router /analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeRequest) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}

// @Summary Run admission without side effects
// @Tags analyze
// @Accept json
// @Produce json
// @Param payload body domain.TextRequest true "Text"
// @Success 200 {object} admission.Result
// @Router /validate [post]
func (h *handlers) validate(r *stdhttp.Request, in domain.TextRequest) (any, error) {
	return h.svc.Validate(r.Context(), in), nil
}

// @Summary Raw inference passthrough
// @Tags analyze
// @Accept json
// @Produce json
// @Param payload body domain.PerplexityRequest true "Text"
// @Success 200 {object} inference.Result
// @Router /perplexity [post]
func (h *handlers) perplexity(r *stdhttp.Request, in domain.PerplexityRequest) (any, error) {
	return h.svc.Perplexity(r.Context(), in)
}

// @Summary Store a pre-scored answer
// @Tags analyze
// @Accept json
// @Produce json
// @Param payload body domain.SubmitRequest true "Scored answer"
// @Success 200 {object} subdom.Submission
// @Router /submit [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitRequest) (any, error) {
	return h.svc.Submit(r.Context(), in)
}
