// Package store provides a unified interface to the optional storage backends
// slopmeter talks to: postgres for submissions and clickhouse for the admission audit trail
package store

import (
	"context"
	"errors"
	"fmt"

	"slopmeter/internal/platform/logger"
)

// Store holds the backends a process opened
// a nil field means the backend is switched off, the zero value opens nothing
type Store struct {
	Log logger.Logger

	// PG holds text_submissions
	PG TxRunner

	// CH receives admission_events
	CH Clickhouse
}

// Row is what QueryRow hands back
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write touched
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos are written against
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn inside one transaction
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar side, used for append-only event tables
// each Insert row lists values in table column order
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Close() error
}

// Pinger answers readiness probes
type Pinger interface{ Ping(context.Context) error }

// Open dials what cfg enables, anything left disabled stays nil
// a failed clickhouse dial closes the postgres pool it already opened
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Str("component", "store").Logger()

	if cfg.PG.Enabled {
		p, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = p
	}
	if cfg.CH.Enabled {
		c, err := openCH(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.CH = c
	}

	names := make([]string, 0, 2)
	for _, b := range s.backends() {
		names = append(names, b.name)
	}
	s.Log.Debug().Strs("backends", names).Msg("store open")
	return s, nil
}

type backend struct {
	name string
	seam any
}

// backends lists the open seams in open order with their log label
func (s *Store) backends() []backend {
	var out []backend
	if s.PG != nil {
		out = append(out, backend{"pg", s.PG})
	}
	if s.CH != nil {
		out = append(out, backend{"ch", s.CH})
	}
	return out
}

// Guard pings each open backend once, failures come back joined and labelled
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, b := range s.backends() {
		p, ok := b.seam.(Pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases backends in reverse open order
func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	bs := s.backends()
	for i := len(bs) - 1; i >= 0; i-- {
		b := bs[i]
		c, ok := b.seam.(interface{ Close() error })
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s close: %w", b.name, err))
		}
	}
	return errors.Join(errs...)
}
