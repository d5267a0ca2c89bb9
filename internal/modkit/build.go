package modkit

import (
	"net/http"

	"slopmeter/internal/modkit/httpkit"
	"slopmeter/internal/modkit/module"
	str "slopmeter/internal/platform/strings"
)

// Module is what api.Mount composes: routes, ports and a name
type Module = module.Module


// Built is a plain struct with the fields modules care about
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(httpkit.Router)
}

// Build applies Option funcs and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Mount registers a module's routes with its middlewares scoped to them
// an empty or "/" prefix shares the parent path through a chi group
func Mount(r httpkit.Router, prefix string, mw []func(http.Handler) http.Handler, register func(httpkit.Router)) {
	scoped := func(sub httpkit.Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		register(sub)
	}
	if prefix == "" || prefix == "/" {
		r.Group(scoped)
		return
	}
	r.Route(str.MustPrefix(prefix), scoped)
}
