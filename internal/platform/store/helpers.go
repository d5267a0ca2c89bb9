package store

import (
	"context"
	"errors"

	perr "slopmeter/internal/platform/errors"
)

// errTooMany means a query expected to be keyed returned a second row
var errTooMany = errors.New("store: more than one row")

// collect runs sql and scans at most limit rows, limit < 0 reads everything
// it reports whether rows were left unread
func collect[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), limit int, sql string, args ...any) ([]T, bool, error) {
	rs, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, false, err
	}
	defer rs.Close()

	out := []T{}
	for rs.Next() {
		if limit >= 0 && len(out) == limit {
			return out, true, nil
		}
		item, err := scan(rs)
		if err != nil {
			return nil, false, err
		}
		out = append(out, item)
	}
	return out, false, rs.Err()
}

// One scans the single row a keyed query returns
// an empty result is perr.ErrNotFound
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	xs, more, err := collect(ctx, q, scan, 1, sql, args...)
	switch {
	case err != nil:
		return zero, err
	case more:
		return zero, errTooMany
	case len(xs) == 0:
		return zero, perr.ErrNotFound
	}
	return xs[0], nil
}

// Many scans every row, an empty result is an empty non-nil slice
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	xs, _, err := collect(ctx, q, scan, -1, sql, args...)
	return xs, err
}
