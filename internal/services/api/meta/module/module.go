// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	"slopmeter/internal/modkit"
	"slopmeter/internal/modkit/httpkit"
	"slopmeter/internal/platform/cache"
	str "slopmeter/internal/platform/strings"

	metahttp "slopmeter/internal/services/api/meta/http"
)

// ServiceName is reported by /health and /version
const ServiceName = "slopmeter-api"

// Module implements the modkit.Module interface
type Module struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)

	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta")}, opts...)...)

	m := &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: time.Now(),
	}

	d := metahttp.Deps{
		ServiceName:  ServiceName,
		StartedAt:    m.startedAt,
		ReadyTimeout: deps.Cfg.Prefix("CORE_API_").MayDuration("READY_TIMEOUT", 2*time.Second),
		PG:           pinger(deps.PG),
		CH:           pinger(deps.CH),
	}
	if _, noop := deps.Cache.(cache.Noop); !noop {
		d.Cache = pinger(deps.Cache)
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, d)
		external(r)
	}
	return m
}

func pinger(v any) metahttp.Pinger {
	if p, ok := v.(metahttp.Pinger); ok {
		return p
	}
	return nil
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { modkit.Mount(r, m.prefix, m.mws, m.register) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
