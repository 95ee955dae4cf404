// Package errs contains the API error type and sentinel errors used across
// layers for stable error mapping.
package errs

import (
	"errors"
	"net/http"
)

// Error is a classified failure carrying the HTTP status visible to API
// clients. The message is client-safe by contract: database routines raise
// human-readable errors meant to be surfaced as-is.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// New constructs a classified error.
func New(status int, msg string) *Error { return &Error{Status: status, Message: msg} }

// Forbidden constructs a 403 with a human-readable reason.
func Forbidden(reason string) *Error { return New(http.StatusForbidden, reason) }

// As extracts a classified error from err, if it carries one.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates a temporary sign-in lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)
