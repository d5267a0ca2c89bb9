// Package audit records admission decisions to clickhouse
// writes are batched off the request path, a full buffer drops events
package audit

import (
	"context"
	"sync/atomic"
	"time"

	"slopmeter/internal/platform/logger"
	"slopmeter/internal/platform/store"
)

// Table is the clickhouse destination
const Table = "admission_events"

const (
	defaultBatch    = 256
	defaultInterval = 2 * time.Second
)

// Event is one admission decision, column order matches Table
type Event struct {
	TS         time.Time
	RequestID  string
	QuestionID int
	Stage      string
	Valid      bool
	Length     int
	TextHash   string
}

func (e Event) row() []any {
	var valid uint8
	if e.Valid {
		valid = 1
	}
	return []any{e.TS.UTC(), e.RequestID, int32(e.QuestionID), e.Stage, valid, uint32(e.Length), e.TextHash}
}

// Sink accepts events without blocking the caller
type Sink interface {
	Record(ctx context.Context, e Event)
}

// Noop drops every event
type Noop struct{}

// Record implements Sink
func (Noop) Record(context.Context, Event) {}

// Options tunes the batcher
type Options struct {
	Batch    int
	Interval time.Duration
	Buffer   int
}

// Batcher buffers events and flushes them in batches
type Batcher struct {
	ch   store.Clickhouse
	in   chan Event
	opts Options
	log  logger.Logger

	dropped atomic.Int64
}

// NewBatcher builds a Batcher, call Run to start flushing
func NewBatcher(ch store.Clickhouse, o Options) *Batcher {
	if o.Batch <= 0 {
		o.Batch = defaultBatch
	}
	if o.Interval <= 0 {
		o.Interval = defaultInterval
	}
	if o.Buffer < o.Batch {
		o.Buffer = o.Batch * 4
	}
	return &Batcher{ch: ch, in: make(chan Event, o.Buffer), opts: o, log: *logger.Named("audit")}
}

// Record implements Sink
func (b *Batcher) Record(ctx context.Context, e Event) {
	if e.TS.IsZero() {
		e.TS = time.Now()
	}
	if e.RequestID == "" {
		e.RequestID = logger.RequestID(ctx)
	}
	select {
	case b.in <- e:
	default:
		b.dropped.Add(1)
	}
}

// Dropped reports how many events were lost to a full buffer
func (b *Batcher) Dropped() int64 { return b.dropped.Load() }

// Run flushes until ctx is done, then drains what is buffered
func (b *Batcher) Run(ctx context.Context) {
	t := time.NewTicker(b.opts.Interval)
	defer t.Stop()

	pending := make([][]any, 0, b.opts.Batch)
	flush := func(fctx context.Context) {
		if len(pending) == 0 {
			return
		}
		if err := b.ch.Insert(fctx, Table, pending); err != nil {
			b.log.Warn().Err(err).Int("rows", len(pending)).Msg("audit flush failed")
		}
		pending = pending[:0]
	}

	for {
		select {
		case e := <-b.in:
			pending = append(pending, e.row())
			if len(pending) >= b.opts.Batch {
				flush(ctx)
			}
		case <-t.C:
			flush(ctx)
		case <-ctx.Done():
		drain:
			for {
				select {
				case e := <-b.in:
					pending = append(pending, e.row())
				default:
					break drain
				}
			}
			dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			flush(dctx)
			cancel()
			if n := b.Dropped(); n > 0 {
				b.log.Warn().Int64("dropped", n).Msg("audit events dropped on full buffer")
			}
			return
		}
	}
}
