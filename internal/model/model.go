// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Identity is the resolved caller of a request. It is rebuilt from the
// session on every inbound request and never cached across requests, so
// revoking a session takes effect immediately.
type Identity struct {
	ID            uuid.UUID
	IsAdmin       bool
	FirstName     string
	LastName      string
	Authenticated bool
}

// Anonymous is the identity of an unauthenticated caller: no id, no
// privileges. Absent, stale, or garbage session tokens all resolve to it.
func Anonymous() Identity { return Identity{} }

// Member is an account row as stored by the database. The is_admin column
// is truthy storage (smallint); repositories coerce it to a bool.
type Member struct {
	ID        uuid.UUID
	Username  string
	PwdHash   []byte
	SaltAuth  []byte
	IsAdmin   bool
	FirstName string
	LastName  string
	CreatedAt time.Time
}

// Identity builds the per-request identity from a member row.
func (m *Member) Identity() Identity {
	return Identity{
		ID:            m.ID,
		IsAdmin:       m.IsAdmin,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Authenticated: true,
	}
}
