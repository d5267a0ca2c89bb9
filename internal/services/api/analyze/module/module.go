// Package module wires analyze into the API using modkit
package module

import (
	"net/http"

	"slopmeter/internal/adapters/inference"
	"slopmeter/internal/modkit"
	"slopmeter/internal/modkit/httpkit"
	str "slopmeter/internal/platform/strings"
	analyzedom "slopmeter/internal/services/api/analyze/domain"
	analyzehttp "slopmeter/internal/services/api/analyze/http"
	analyzesvc "slopmeter/internal/services/api/analyze/service"
	"slopmeter/internal/services/audit"
	subdom "slopmeter/internal/services/submissions/domain"
)

// Ports are what analyze needs from the rest of the process, injected with modkit.WithPorts
type Ports struct {
	Gate   analyzedom.Admitter
	Scorer inference.Scorer
	Store  subdom.StorePort
	Audit  audit.Sink
}

// Module implements the modkit.Module interface
type Module struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)

	svc analyzesvc.Service
}

// New constructs the analyze module, it panics without Ports
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("analyze")}, opts...)...)

	p, ok := b.Ports.(Ports)
	if !ok {
		panic("analyze module requires analyze/module.Ports")
	}
	svc := analyzesvc.New(p.Gate, p.Scorer, p.Store, p.Audit)

	m := &Module{name: b.Name, prefix: b.Prefix, mws: b.Mw, svc: svc}
	external := b.Register
	m.register = func(r httpkit.Router) {
		analyzehttp.Register(r, m.svc)
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { modkit.Mount(r, m.prefix, m.mws, m.register) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Ports exposes the service for other modules
func (m *Module) Ports() any { return analyzedom.ServicePort(m.svc) }
