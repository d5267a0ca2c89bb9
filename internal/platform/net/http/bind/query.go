package bind

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	perr "slopmeter/internal/platform/errors"
)

// PathInt reads a non negative integer route parameter
func PathInt(r *http.Request, key string) (int, error) {
	raw := chi.URLParam(r, key)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a non negative integer", key), key)
	}
	return n, nil
}

// QueryFloat reads an optional finite float query parameter, absent yields nil
func QueryFloat(r *http.Request, key string) (*float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, perr.WithField(perr.InvalidArgf("%s must be a number", key), key)
	}
	return &f, nil
}
