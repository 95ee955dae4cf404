package repository

import "context"

// ProcedureInvoker executes a named database routine with positional
// parameters and returns its rows in column order. Column order is the
// contract: create routines return the new identifier in column 0, the
// two-value student-record create returns the record id in column 0 and the
// student number in column 1. Effect-only routines yield an empty slice.
type ProcedureInvoker interface {
	Invoke(ctx context.Context, name string, args ...any) ([][]any, error)
}
