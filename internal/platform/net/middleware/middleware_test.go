package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pnet "slopmeter/internal/platform/net"
	"slopmeter/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestRequestID_MintsAndEchoes(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newID, func() string { return "minted-1" })

	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen != "minted-1" || rr.Header().Get(RequestIDHeader) != "minted-1" {
		t.Fatalf("seen=%q header=%q", seen, rr.Header().Get(RequestIDHeader))
	}

	cases := map[string]string{
		"client-abc":            "client-abc",
		"has space":             "minted-1",
		strings.Repeat("x", 65): "minted-1",
		"tab\tinside":           "minted-1",
		strings.Repeat("y", 64): strings.Repeat("y", 64),
	}
	for in, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, in)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if seen != want {
			t.Fatalf("incoming %q: got %q want %q", in, seen, want)
		}
	}
}

func TestRecoverJSON_WritesEnvelope(t *testing.T) {
	h := RequestID(RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})))
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "rid-panic")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rr.Code)
	}
	var body struct {
		OK    bool `json:"ok"`
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.OK || body.Error.Code != "panic" || body.RequestID != "rid-panic" {
		t.Fatalf("unexpected body %+v", body)
	}
	testkit.MustContain(t, logBuf.String(), `"panic":"kaboom"`)
}

func TestRecoverJSON_RepanicsAbort(t *testing.T) {
	h := RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	testkit.MustPanic(t, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestAccessLog_FieldsLevelsAndSkip(t *testing.T) {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLogZerolog(AccessLogOptions{Slow: time.Hour, Skip: []string{"/metrics"}}))
	r.Get("/submission/{textHash}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})
	r.Get("/fail", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	r.Get("/metrics", func(http.ResponseWriter, *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/submission/abc", nil)
	req.Header.Set(RequestIDHeader, "rid-access")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := logBuf.String()
	testkit.MustContain(t, out, `"route":"/submission/{textHash}"`)
	testkit.MustContain(t, out, `"request_id":"rid-access"`)
	testkit.MustContain(t, out, `"bytes":5`)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	var failLine string
	for _, line := range strings.Split(logBuf.String(), "\n") {
		if strings.Contains(line, `"status":502`) {
			failLine = line
		}
	}
	testkit.MustContain(t, failLine, `"level":"error"`)

	before := strings.Count(logBuf.String(), "request done")
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if after := strings.Count(logBuf.String(), "request done"); after != before {
		t.Fatalf("skipped path was logged")
	}
}

func TestCORS_Defaults(t *testing.T) {
	t.Parallel()

	h := CORS(CORSOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyze", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin %q", got)
	}
}
