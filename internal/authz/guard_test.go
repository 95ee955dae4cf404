package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/campusware/registrar/internal/errs"
	"github.com/campusware/registrar/internal/model"
	"github.com/campusware/registrar/internal/repository"
)

type fakeOwnership struct {
	records map[uuid.UUID]uuid.UUID // srid -> mid
	courses map[uuid.UUID]uuid.UUID // pcid -> mid
	err     error
}

var _ repository.OwnershipRepository = (*fakeOwnership)(nil)

func (f *fakeOwnership) OwnsStudentRecord(_ context.Context, memberID, recordID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.records[recordID] == memberID, nil
}

func (f *fakeOwnership) OwnsPresentedCourse(_ context.Context, memberID, courseID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.courses[courseID] == memberID, nil
}

func (f *fakeOwnership) StudentRecordOf(_ context.Context, memberID uuid.UUID) (uuid.UUID, error) {
	for srid, mid := range f.records {
		if mid == memberID {
			return srid, nil
		}
	}
	return uuid.Nil, errs.ErrNotFound
}

func ident(admin bool) model.Identity {
	return model.Identity{ID: uuid.Must(uuid.NewV4()), IsAdmin: admin, Authenticated: true}
}

func TestAuthorize_Public(t *testing.T) {
	g := NewGuard(&fakeOwnership{})
	require.NoError(t, g.Authorize(context.Background(), model.Anonymous(), Public))
}

func TestAuthorize_AdminOnly(t *testing.T) {
	g := NewGuard(&fakeOwnership{})
	ctx := context.Background()

	require.NoError(t, g.Authorize(ctx, ident(true), AdminOnly))

	err := g.Authorize(ctx, ident(false), AdminOnly)
	e, ok := errs.As(err)
	require.True(t, ok)
	require.Equal(t, 403, e.Status)
	require.Equal(t, "admin required", e.Message)

	err = g.Authorize(ctx, model.Anonymous(), AdminOnly)
	e, ok = errs.As(err)
	require.True(t, ok)
	require.Equal(t, 403, e.Status)
}

func TestAuthorize_Owner(t *testing.T) {
	owner := ident(false)
	other := ident(false)
	admin := ident(true)
	srid := uuid.Must(uuid.NewV4())

	g := NewGuard(&fakeOwnership{records: map[uuid.UUID]uuid.UUID{srid: owner.ID}})
	ctx := context.Background()
	pol := Owner{Resource: StudentRecord, ResourceID: srid, AdminOverride: true}

	require.NoError(t, g.Authorize(ctx, owner, pol))

	err := g.Authorize(ctx, other, pol)
	e, ok := errs.As(err)
	require.True(t, ok)
	require.Equal(t, 403, e.Status)
	require.Equal(t, "you do not own this resource", e.Message)

	// admins bypass ownership when the endpoint allows the override
	require.NoError(t, g.Authorize(ctx, admin, pol))

	// ...and are checked like anyone else when it doesn't
	noOverride := Owner{Resource: StudentRecord, ResourceID: srid, AdminOverride: false}
	err = g.Authorize(ctx, admin, noOverride)
	_, ok = errs.As(err)
	require.True(t, ok)

	// anonymous callers never own anything
	err = g.Authorize(ctx, model.Anonymous(), noOverride)
	e, ok = errs.As(err)
	require.True(t, ok)
	require.Equal(t, 403, e.Status)
}

func TestAuthorize_OwnerLookupFailure(t *testing.T) {
	g := NewGuard(&fakeOwnership{err: errors.New("db down")})
	pol := Owner{Resource: PresentedCourse, ResourceID: uuid.Must(uuid.NewV4()), AdminOverride: true}

	err := g.Authorize(context.Background(), ident(false), pol)
	require.Error(t, err)
	_, ok := errs.As(err)
	require.False(t, ok, "infrastructure failures are not classified here")
}
