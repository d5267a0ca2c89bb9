// Package httpkit is what api modules mount routes with
// it re-exports the platform router types so modules never import platform/net/http
package httpkit

import (
	"net/http"

	phttp "slopmeter/internal/platform/net/http"
)

type (
	Envelope = phttp.Envelope
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

// V1 is the path every public route lives under
const V1 = "/api/v1"

// Param returns a chi path parameter
func Param(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// Get registers a GET handler, returning a Response picks the status
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.NoBody(h))
}

// PostJSON registers a POST handler with a bound and validated T body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// MountAPIV1 scopes mw to V1 and lets mount register the module routes there
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(V1, func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
