package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/campusware/registrar/internal/errs"
)

// OwnershipRepo answers resource-ownership point queries.
type OwnershipRepo struct{ db *DB }

// NewOwnershipRepo constructs an ownership repository.
func NewOwnershipRepo(db *DB) *OwnershipRepo { return &OwnershipRepo{db: db} }

// OwnsStudentRecord reports whether the student record belongs to the member.
func (r *OwnershipRepo) OwnsStudentRecord(ctx context.Context, memberID, recordID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM student_record WHERE srid=$1 AND mid=$2)`
	var owns bool
	if err := r.db.Pool.QueryRow(ctx, q, recordID, memberID).Scan(&owns); err != nil {
		return false, err
	}
	return owns, nil
}

// OwnsPresentedCourse reports whether the member is the staff teaching the section.
func (r *OwnershipRepo) OwnsPresentedCourse(ctx context.Context, memberID, courseID uuid.UUID) (bool, error) {
	const q = `
SELECT EXISTS(
  SELECT 1 FROM presented_course pc
  JOIN staff st ON st.stid = pc.staff_id
  WHERE pc.pcid=$1 AND st.mid=$2)`
	var owns bool
	if err := r.db.Pool.QueryRow(ctx, q, courseID, memberID).Scan(&owns); err != nil {
		return false, err
	}
	return owns, nil
}

// StudentRecordOf returns the member's own student record id.
func (r *OwnershipRepo) StudentRecordOf(ctx context.Context, memberID uuid.UUID) (uuid.UUID, error) {
	const q = `SELECT srid FROM student_record WHERE mid=$1`
	var srid uuid.UUID
	if err := r.db.Pool.QueryRow(ctx, q, memberID).Scan(&srid); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, errs.ErrNotFound
		}
		return uuid.Nil, err
	}
	return srid, nil
}
