package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/campusware/registrar/internal/errs"
	"github.com/campusware/registrar/internal/model"
)

// MemberRepo implements MemberRepository using PostgreSQL.
type MemberRepo struct{ db *DB }

// NewMemberRepo constructs a member repository.
func NewMemberRepo(db *DB) *MemberRepo { return &MemberRepo{db: db} }

// GetByID selects a member by id. Used by the session resolver, so a missing
// row maps to ErrNotFound and the caller degrades to anonymous.
func (r *MemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	const q = `
SELECT mid, username, pwd_hash, salt_auth, is_admin, first_name, last_name, created_at
FROM member WHERE mid=$1`
	return r.scanMember(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByUsername selects a member by username for the sign-in credential check.
func (r *MemberRepo) GetByUsername(ctx context.Context, username string) (*model.Member, error) {
	const q = `
SELECT mid, username, pwd_hash, salt_auth, is_admin, first_name, last_name, created_at
FROM member WHERE username=$1`
	return r.scanMember(r.db.Pool.QueryRow(ctx, q, username))
}

func (r *MemberRepo) scanMember(row interface{ Scan(dest ...any) error }) (*model.Member, error) {
	var m model.Member
	var admin int16
	if err := row.Scan(&m.ID, &m.Username, &m.PwdHash, &m.SaltAuth, &admin, &m.FirstName, &m.LastName, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	m.IsAdmin = admin != 0
	return &m, nil
}
