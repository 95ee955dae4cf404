package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// OwnershipRepository answers whether a resource belongs to an identity.
// Lookups are point existence queries executed before the guarded mutation;
// the check and the mutation are deliberately separate round trips.
type OwnershipRepository interface {
	// OwnsStudentRecord reports whether the member owns the student record.
	OwnsStudentRecord(ctx context.Context, memberID, recordID uuid.UUID) (bool, error)
	// OwnsPresentedCourse reports whether the member teaches the section.
	OwnsPresentedCourse(ctx context.Context, memberID, courseID uuid.UUID) (bool, error)
	// StudentRecordOf returns the member's own student record id.
	StudentRecordOf(ctx context.Context, memberID uuid.UUID) (uuid.UUID, error)
}
