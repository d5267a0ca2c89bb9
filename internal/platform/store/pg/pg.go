// Package pg opens the pgxpool the store adapter runs submissions queries on
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is the pool shape for the submissions database
type Config struct {
	URL string
	// MaxConns and MinConns bound the pool, zero keeps the pgx default
	MaxConns int32
	MinConns int32
	// MaxConnIdle closes connections idle for longer, zero keeps the pgx default
	MaxConnIdle time.Duration
	SlowMs      int
	// AppName sets application_name unless the DSN already carries one
	AppName string
}

// PG owns the pool plus the tracer the store adapter reports to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL, applies the pool bounds and builds the pool without pinging
func Open(ctx context.Context, cfg Config, tracer QueryTracer) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 && cfg.MinConns <= pcfg.MaxConns {
		pcfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnIdle > 0 {
		pcfg.MaxConnIdleTime = cfg.MaxConnIdle
	}
	if cfg.AppName != "" {
		rp := pcfg.ConnConfig.RuntimeParams
		if rp == nil {
			rp = map[string]string{}
			pcfg.ConnConfig.RuntimeParams = rp
		}
		if _, ok := rp["application_name"]; !ok {
			rp["application_name"] = "slopmeter-" + cfg.AppName
		}
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close is safe on a nil or never opened PG
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
