// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"slopmeter/internal/core/questions"
	"slopmeter/internal/core/version"
	"slopmeter/internal/modkit/httpkit"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
// a nil pinger is reported as skipped
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	ReadyTimeout time.Duration
	PG           Pinger
	CH           Pinger
	Cache        Pinger
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/questions", h.questions)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"slopmeter-api"`
	Started string `json:"started"  example:"2026-10-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"   example:"300"`
	Now     string `json:"now"      example:"2026-10-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-03T13:05:00Z"`
}

// @Summary Liveness
// @Tags meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	now := time.Now().UTC()
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
		Now:     now.Format(time.RFC3339),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()

	named := []struct {
		name string
		p    Pinger
	}{{"pg", h.deps.PG}, {"ch", h.deps.CH}, {"redis", h.deps.Cache}}

	checks := make([]ReadyCheck, len(named))
	var g errgroup.Group
	for i, n := range named {
		if n.p == nil {
			checks[i] = ReadyCheck{Name: n.name, Status: "skipped"}
			continue
		}
		g.Go(func() error {
			if err := n.p.Ping(ctx); err != nil {
				checks[i] = ReadyCheck{Name: n.name, Status: "fail", Error: err.Error()}
				return nil
			}
			checks[i] = ReadyCheck{Name: n.name, Status: "ok"}
			return nil
		})
	}
	_ = g.Wait()

	out := ReadyResponse{Status: overall(checks), Checks: checks, Now: time.Now().UTC().Format(time.RFC3339)}
	if out.Status == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// overall is fail when postgres is down, degraded when an optional backend is
func overall(checks []ReadyCheck) string {
	status := "ok"
	for _, c := range checks {
		switch {
		case c.Status == "fail" && c.Name == "pg":
			return "fail"
		case c.Status != "ok":
			status = "degraded"
		}
	}
	return status
}

// @Summary Build and version info
// @Tags meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// @Summary The question registry
// @Tags meta
// @Produce json
// @Success 200 {array} questions.Question
// @Router /questions [get]
func (h *handlers) questions(_ *http.Request) (any, error) {
	return questions.All(), nil
}
