// Package modkit provides module wiring and core deps
package modkit

import (
	"slopmeter/internal/modkit/repokit"
	"slopmeter/internal/platform/cache"
	"slopmeter/internal/platform/config"
	"slopmeter/internal/platform/logger"
	"slopmeter/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// PG and CH are nil when the backend is disabled, Cache is never nil once Normalize ran
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	CH    store.Clickhouse
	Cache cache.Cache
}

// FromStore copies the store seams into Deps
func FromStore(log logger.Logger, cfg config.Conf, st *store.Store, c cache.Cache) Deps {
	d := Deps{Log: log, Cfg: cfg, Cache: c}
	if st != nil {
		d.PG = st.PG
		d.CH = st.CH
	}
	return d.Normalize()
}

// Normalize fills optional seams with safe defaults
func (d Deps) Normalize() Deps {
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	return d
}
