package http

import (
	"context"
	"io"
	"net"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slopmeter/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

func TestAdaptChi_RoutesGroupsAndParams(t *testing.T) {
	t.Parallel()

	m := chi.NewRouter()
	r := AdaptChi(m)

	var order []string
	r.Route("/api/v1", func(v1 Router) {
		v1.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				order = append(order, "mw")
				next.ServeHTTP(w, req)
			})
		})
		v1.Group(func(g Router) {
			g.Get("/submission/{textHash}", NoBody(func(req *stdhttp.Request) (any, error) {
				order = append(order, "h")
				return URLParam(req, "textHash"), nil
			}))
		})
		v1.Post("/echo", JSONHandler(func(_ *stdhttp.Request, in struct {
			Text string `json:"text"`
		}) (any, error) {
			return in.Text, nil
		}))
		if v1.Mux() != m {
			t.Errorf("Mux on a sub router should return the root mux")
		}
	})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/api/v1/submission/abc123", nil))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if len(order) != 2 || order[0] != "mw" || order[1] != "h" {
		t.Fatalf("middleware order %v", order)
	}

	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPost, "/api/v1/submission/abc123", nil))
	if rr.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("wrong method status %d", rr.Code)
	}
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()

	m := chi.NewRouter()
	MountProfiler(AdaptChi(m), "/debug", false)
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rr.Code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler should 404, got %d", rr.Code)
	}

	m = chi.NewRouter()
	MountProfiler(AdaptChi(m), "/debug", true)
	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("enabled profiler status %d", rr.Code)
	}
}

func TestServer_ServeAndGracefulStop(t *testing.T) {
	t.Setenv("SLOPTEST_PORT", "8123")
	t.Setenv("SLOPTEST_SHUTDOWN_TIMEOUT", "2s")

	s := NewServer(config.New().Prefix("SLOPTEST_"))
	if s.Addr() != ":8123" {
		t.Fatalf("addr %q", s.Addr())
	}
	s.Router().Get("/ping", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := stdhttp.Get("http://" + ln.Addr().String() + "/ping")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "pong" {
		t.Fatalf("body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
