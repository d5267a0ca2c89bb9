// Package http provides http transport for submission reads
package http

import (
	stdhttp "net/http"

	"slopmeter/internal/modkit/httpkit"
	"slopmeter/internal/platform/net/http/bind"
	"slopmeter/internal/services/api/submissions/domain"
	svc "slopmeter/internal/services/api/submissions/service"
)

// Register mounts submission read endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/submissions/{questionId}", h.list)
	httpkit.Get(r, "/submissions/{questionId}/range", h.rng)
	httpkit.Get(r, "/submission/{textHash}", h.byHash)
	httpkit.Get(r, "/distribution/{questionId}", h.distribution)
}

type handlers struct{ svc svc.Service }

// @Summary All submissions for a question by ascending perplexity
// @Tags submissions
// @Produce json
// @Param questionId path int true "Question id"
// @Success 200 {array} subdom.Submission
// @Router /submissions/{questionId} [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	qid, err := bind.PathInt(r, "questionId")
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), qid)
}

// @Summary Submissions within a perplexity window
// @Tags submissions
// @Produce json
// @Param questionId path int true "Question id"
// @Param min query number false "Lower bound, with max"
// @Param max query number false "Upper bound, with min"
// @Param target query number false "Centre of a percentage window"
// @Param range query number false "Window half width in percent" default(10)
// @Success 200 {array} subdom.Submission
// @Failure 400 {object} httpkit.Envelope
// @Router /submissions/{questionId}/range [get]
func (h *handlers) rng(r *stdhttp.Request) (any, error) {
	qid, err := bind.PathInt(r, "questionId")
	if err != nil {
		return nil, err
	}
	var q domain.RangeQuery
	if q.Min, err = bind.QueryFloat(r, "min"); err != nil {
		return nil, err
	}
	if q.Max, err = bind.QueryFloat(r, "max"); err != nil {
		return nil, err
	}
	if q.Target, err = bind.QueryFloat(r, "target"); err != nil {
		return nil, err
	}
	pct, err := bind.QueryFloat(r, "range")
	if err != nil {
		return nil, err
	}
	if pct != nil {
		q.Range = *pct
	}
	return h.svc.Range(r.Context(), qid, q)
}

// @Summary One submission placed among its question's population
// @Tags submissions
// @Produce json
// @Param textHash path string true "md5 of the canonical text"
// @Success 200 {object} domain.Detail
// @Failure 404 {object} httpkit.Envelope
// @Router /submission/{textHash} [get]
func (h *handlers) byHash(r *stdhttp.Request) (any, error) {
	return h.svc.ByHash(r.Context(), httpkit.Param(r, "textHash"))
}

// @Summary Perplexity distribution of a question
// @Tags submissions
// @Produce json
// @Param questionId path int true "Question id"
// @Success 200 {object} subdom.Distribution
// @Router /distribution/{questionId} [get]
func (h *handlers) distribution(r *stdhttp.Request) (any, error) {
	qid, err := bind.PathInt(r, "questionId")
	if err != nil {
		return nil, err
	}
	return h.svc.Distribution(r.Context(), qid)
}
