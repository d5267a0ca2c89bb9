// Package module wires the submissions service for the api modules
package module

import (
	"slopmeter/internal/modkit"
	"slopmeter/internal/modkit/httpkit"
	"slopmeter/internal/services/submissions/domain"
	"slopmeter/internal/services/submissions/repo"
	"slopmeter/internal/services/submissions/service"
)

// Ports exposed by the submissions module
type Ports struct {
	Store        domain.StorePort
	Distribution domain.DistributionPort
}

// Module implements the submissions service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the module, deps.PG must be set
func New(deps modkit.Deps) *Module {
	deps = deps.Normalize()
	svc := service.New(deps.PG, repo.NewPG(), deps.Cache)

	return &Module{
		deps:  deps,
		ports: Ports{Store: svc, Distribution: svc},
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "submissions" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module, the api modules own the routes
func (m *Module) MountRoutes(httpkit.Router) {}
