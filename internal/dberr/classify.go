// Package dberr translates database failures into classified API errors.
package dberr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campusware/registrar/internal/errs"
)

// Classify maps a database failure to a classified error. Routine-raised
// errors (pgconn.PgError) go through an ordered text rule list over the
// message, first match wins:
//
//	contains "full"  -> 409 (capacity exceeded)
//	contains "exist" -> 404 (covers both "does not exist" and "already exists")
//	otherwise        -> 400
//
// The routine's message is passed through unmodified; routines raise
// human-readable, client-safe text. Anything that is not a routine error
// (pool exhaustion, network failure, cancellation) becomes a generic 500
// so driver internals never reach the client.
func Classify(err error) *errs.Error {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return errs.New(http.StatusInternalServerError, "internal error")
	}
	switch {
	case strings.Contains(pg.Message, "full"):
		return errs.New(http.StatusConflict, pg.Message)
	case strings.Contains(pg.Message, "exist"):
		return errs.New(http.StatusNotFound, pg.Message)
	default:
		return errs.New(http.StatusBadRequest, pg.Message)
	}
}
