// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/campusware/registrar/internal/model"
)

// MemberRepository provides point lookups for accounts.
type MemberRepository interface {
	// GetByID loads a member by id for per-request identity resolution.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	// GetByUsername loads a member by username for the sign-in credential check.
	GetByUsername(ctx context.Context, username string) (*model.Member, error)
}
