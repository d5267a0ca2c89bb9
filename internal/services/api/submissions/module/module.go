// Package module wires submission reads into the API using modkit
package module

import (
	"net/http"

	"slopmeter/internal/modkit"
	"slopmeter/internal/modkit/httpkit"
	str "slopmeter/internal/platform/strings"
	readdom "slopmeter/internal/services/api/submissions/domain"
	readhttp "slopmeter/internal/services/api/submissions/http"
	readsvc "slopmeter/internal/services/api/submissions/service"
	subdom "slopmeter/internal/services/submissions/domain"
)

// Ports are the store ports this module reads through, injected with modkit.WithPorts
type Ports struct {
	Store        subdom.StorePort
	Distribution subdom.DistributionPort
}

// Module implements the modkit.Module interface
type Module struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)

	svc readsvc.Service
}

// New constructs the module, it panics without Ports
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("submissions-api")}, opts...)...)

	p, ok := b.Ports.(Ports)
	if !ok {
		panic("submissions api module requires api/submissions/module.Ports")
	}

	m := &Module{name: b.Name, prefix: b.Prefix, mws: b.Mw, svc: readsvc.New(p.Store, p.Distribution)}
	external := b.Register
	m.register = func(r httpkit.Router) {
		readhttp.Register(r, m.svc)
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { modkit.Mount(r, m.prefix, m.mws, m.register) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Ports exposes the read service
func (m *Module) Ports() any { return readdom.ServicePort(m.svc) }
