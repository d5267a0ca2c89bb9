package audit

import (
	"context"

	"slopmeter/internal/modkit"
	"slopmeter/internal/modkit/httpkit"
	"slopmeter/internal/platform/config"
)

// Ports exposed by the audit module
type Ports struct {
	Sink Sink
}

// Module owns the batcher lifecycle
type Module struct {
	ports   Ports
	batcher *Batcher
}

// FromConfig reads CORE_AUDIT_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_AUDIT_")
	return Options{
		Batch:    c.MayIntIn("BATCH", defaultBatch, 1, 100000),
		Interval: c.MayDuration("INTERVAL", defaultInterval),
		Buffer:   c.MayInt("BUFFER", defaultBatch*4),
	}
}

// New builds the module, without clickhouse the sink is a Noop
func New(deps modkit.Deps) *Module {
	if deps.CH == nil {
		return &Module{ports: Ports{Sink: Noop{}}}
	}
	b := NewBatcher(deps.CH, FromConfig(deps.Cfg))
	return &Module{ports: Ports{Sink: b}, batcher: b}
}

// Start runs the batcher until ctx ends, done closes after the final flush
func (m *Module) Start(ctx context.Context) (done <-chan struct{}) {
	c := make(chan struct{})
	if m.batcher == nil {
		close(c)
		return c
	}
	go func() {
		defer close(c)
		m.batcher.Run(ctx)
	}()
	return c
}

// Sink returns the event sink
func (m *Module) Sink() Sink { return m.ports.Sink }

// Name satisfies modkit.Module
func (m *Module) Name() string { return "audit" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
