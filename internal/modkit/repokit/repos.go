// Package repokit aliases the store seams repos are written against
package repokit

import "slopmeter/internal/platform/store"

// Queryer is what a bound repo runs its statements on
type Queryer = store.RowQuerier

// TxRunner is a Queryer that can also open transactions
type TxRunner = store.TxRunner

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row

	// CommandTag is the result of a command that modifies data
	CommandTag = store.CommandTag
)
