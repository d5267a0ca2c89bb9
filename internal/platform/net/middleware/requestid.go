package middleware

import (
	"net/http"

	pnet "slopmeter/internal/platform/net"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 64

// newID is swapped in tests
var newID = uuid.NewString

// RequestID propagates a caller supplied X-Request-ID or mints a uuid
// the id is echoed on the response and stored on the context for chi and the logger
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !usableID(id) {
			id = newID()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(pnet.WithRequestID(r.Context(), id)))
	})
}

// usableID accepts short ids made of visible ASCII only
func usableID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= 0x20 || id[i] >= 0x7f {
			return false
		}
	}
	return true
}
