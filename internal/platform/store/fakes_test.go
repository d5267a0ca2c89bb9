package store

import (
	"context"
	"errors"
)

// fakeRows iterates over in-memory rows, Scan copies ints, strings and float64s
type fakeRows struct {
	cols   []string
	data   [][]any
	i      int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	cur := r.data[r.i-1]
	if len(dest) != len(cur) {
		return errors.New("scan arity mismatch")
	}
	for k, d := range dest {
		switch p := d.(type) {
		case *int:
			*p = cur[k].(int)
		case *string:
			*p = cur[k].(string)
		case *float64:
			*p = cur[k].(float64)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            { r.closed = true }
func (r *fakeRows) Columns() []string { return r.cols }

type fakeQuerier struct {
	execErr  error
	rows     Rows
	queryErr error
	pingErr  error
	closed   bool
}

func (f *fakeQuerier) Exec(context.Context, string, ...any) (CommandTag, error) {
	return nil, f.execErr
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func (f *fakeQuerier) QueryRow(context.Context, string, ...any) Row { return nil }

func (f *fakeQuerier) Tx(ctx context.Context, fn func(q RowQuerier) error) error { return fn(f) }

func (f *fakeQuerier) Ping(context.Context) error { return f.pingErr }

func (f *fakeQuerier) Close() error { f.closed = true; return nil }

type fakeCH struct {
	pingErr  error
	closeErr error
	inserted map[string][][]any
}

func (c *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	if c.inserted == nil {
		c.inserted = map[string][][]any{}
	}
	c.inserted[table] = append(c.inserted[table], rows...)
	return nil
}

func (c *fakeCH) Query(context.Context, string, ...any) (Rows, error) { return &fakeRows{}, nil }
func (c *fakeCH) Exec(context.Context, string, ...any) error           { return nil }
func (c *fakeCH) Close() error                                        { return c.closeErr }
func (c *fakeCH) Ping(context.Context) error                          { return c.pingErr }
