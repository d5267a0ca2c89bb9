package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "slopmeter/internal/platform/net/http"
	"slopmeter/internal/platform/testkit"
)

type ping struct{ err error }

func (p ping) Ping(context.Context) error { return p.err }

func serve(t *testing.T, d Deps, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, d)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestReady(t *testing.T) {
	t.Parallel()

	down := ping{err: errors.New("connection refused")}
	cases := []struct {
		name   string
		deps   Deps
		status int
		want   string
	}{
		{"all up", Deps{PG: ping{}, CH: ping{}, Cache: ping{}}, http.StatusOK, `"status":"ok"`},
		{"optional skipped", Deps{PG: ping{}}, http.StatusOK, `"status":"degraded"`},
		{"redis down", Deps{PG: ping{}, CH: ping{}, Cache: down}, http.StatusOK, `"error":"connection refused"`},
		{"pg down", Deps{PG: down, CH: ping{}, Cache: ping{}}, http.StatusServiceUnavailable, `"status":"fail"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, tc.deps, "/ready")
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.status, rec.Body.String())
			}
			testkit.MustContain(t, rec.Body.String(), tc.want)
		})
	}
}

func TestOverall(t *testing.T) {
	t.Parallel()

	got := overall([]ReadyCheck{{Name: "pg", Status: "ok"}, {Name: "ch", Status: "fail"}, {Name: "redis", Status: "skipped"}})
	if got != "degraded" {
		t.Fatalf("overall = %q", got)
	}
}

func TestHealthVersionQuestions(t *testing.T) {
	t.Parallel()

	d := Deps{ServiceName: "slopmeter-api", StartedAt: time.Now().Add(-time.Minute)}

	testkit.MustContain(t, serve(t, d, "/health").Body.String(), `"service":"slopmeter-api"`)
	testkit.MustContain(t, serve(t, d, "/version").Body.String(), `"service":"slopmeter-api"`)

	body := serve(t, d, "/questions").Body.String()
	testkit.MustContain(t, body, `"text":"What did you do today?"`)
	testkit.MustContain(t, body, `"id":2`)
}
