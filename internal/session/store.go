package session

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Session is the server-side record behind a signed-in caller. It stores
// only the identity pointer, not auth state; the identity itself is
// re-resolved from the database on every request.
type Session struct {
	Token     string    `json:"token"`
	MemberID  uuid.UUID `json:"member_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store keeps sessions keyed by token. Get on an unknown, expired, or
// flushed token returns (nil, nil); callers treat that as anonymous.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
