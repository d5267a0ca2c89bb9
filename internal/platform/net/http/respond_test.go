package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "slopmeter/internal/platform/errors"
	pnet "slopmeter/internal/platform/net"
)

type envelopeJSON struct {
	OK        bool            `json:"ok"`
	Data      json.RawMessage `json:"data"`
	Error     *perr.Wire      `json:"error"`
	RequestID string          `json:"request_id"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelopeJSON {
	t.Helper()
	var e envelopeJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return e
}

func withReqID(r *stdhttp.Request, id string) *stdhttp.Request {
	return r.WithContext(pnet.WithRequestID(r.Context(), id))
}

func TestHandle_Success(t *testing.T) {
	t.Parallel()

	h := Handle(func(*stdhttp.Request) Response {
		return Created(map[string]int{"id": 7})
	})
	rr := httptest.NewRecorder()
	h(rr, withReqID(httptest.NewRequest(stdhttp.MethodPost, "/", nil), "rid-1"))

	if rr.Code != stdhttp.StatusCreated {
		t.Fatalf("status %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type %q", ct)
	}
	e := decode(t, rr)
	if !e.OK || e.Error != nil || e.RequestID != "rid-1" || string(e.Data) != `{"id":7}` {
		t.Fatalf("unexpected envelope %+v data=%s", e, e.Data)
	}
}

func TestHandle_ErrorUsesCodeStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{perr.Rejectedf("Text is too short"), stdhttp.StatusUnprocessableEntity, "rejected"},
		{perr.NotFoundf("submission not found"), stdhttp.StatusNotFound, "not_found"},
		{perr.Unavailablef("Inference API not configured"), stdhttp.StatusServiceUnavailable, "unavailable"},
		{perr.WithField(perr.InvalidArgf("bad id"), "questionId"), stdhttp.StatusBadRequest, "invalid_argument"},
	}
	for _, c := range cases {
		h := Handle(func(*stdhttp.Request) Response { return Error(c.err) })
		rr := httptest.NewRecorder()
		h(rr, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
		if rr.Code != c.status {
			t.Fatalf("%v: status %d want %d", c.err, rr.Code, c.status)
		}
		e := decode(t, rr)
		if e.OK || e.Error == nil || e.Error.Code != c.code {
			t.Fatalf("%v: envelope %+v", c.err, e)
		}
		if e.Error.Message != perr.WireFrom(c.err).Message || e.Error.Field != perr.WireFrom(c.err).Field {
			t.Fatalf("%v: wire mismatch %+v", c.err, e.Error)
		}
	}
}

func TestHandle_HeadersAndNoContent(t *testing.T) {
	t.Parallel()

	h := Handle(func(*stdhttp.Request) Response {
		return Response{Status: stdhttp.StatusNoContent, Header: stdhttp.Header{"X-Test": {"a"}}}
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	if rr.Code != stdhttp.StatusNoContent || rr.Body.Len() != 0 {
		t.Fatalf("status %d body %q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Test") != "a" {
		t.Fatalf("header not copied")
	}
}

func TestJSONHandler(t *testing.T) {
	t.Parallel()

	type in struct {
		Text string `json:"text" validate:"required"`
	}
	h := JSONHandler(func(_ *stdhttp.Request, v in) (any, error) {
		return map[string]string{"echo": v.Text}, nil
	})

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(stdhttp.MethodPost, "/", strings.NewReader(`{"text":"hi"}`)))
	if rr.Code != stdhttp.StatusOK || string(decode(t, rr).Data) != `{"echo":"hi"}` {
		t.Fatalf("status %d body %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest(stdhttp.MethodPost, "/", strings.NewReader(`{}`)))
	if rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("validation failure status %d", rr.Code)
	}
	if e := decode(t, rr); e.Error == nil || e.Error.Field != "text" {
		t.Fatalf("expected field on error, got %+v", e.Error)
	}
}

func TestNoBody(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fn   func(*stdhttp.Request) (any, error)
		want int
	}{
		{"error", func(*stdhttp.Request) (any, error) { return nil, perr.NotFoundf("nope") }, stdhttp.StatusNotFound},
		{"value", func(*stdhttp.Request) (any, error) { return 1, nil }, stdhttp.StatusOK},
		{"response", func(*stdhttp.Request) (any, error) {
			return Response{Status: stdhttp.StatusServiceUnavailable, Body: "down"}, nil
		}, stdhttp.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			NoBody(tc.fn)(rr, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
			if rr.Code != tc.want {
				t.Fatalf("status %d want %d", rr.Code, tc.want)
			}
		})
	}
}
