package postgres

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/campusware/registrar/internal/errs"
)

func TestOwnershipRepo_OwnsStudentRecord(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewOwnershipRepo(db)
	mid := uuid.Must(uuid.NewV4())
	srid := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM student_record WHERE srid=\$1 AND mid=\$2\)`).
		WithArgs(srid, mid).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	owns, err := r.OwnsStudentRecord(context.Background(), mid, srid)
	require.NoError(t, err)
	require.True(t, owns)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM student_record WHERE srid=\$1 AND mid=\$2\)`).
		WithArgs(srid, mid).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	owns, err = r.OwnsStudentRecord(context.Background(), mid, srid)
	require.NoError(t, err)
	require.False(t, owns)
}

func TestOwnershipRepo_OwnsPresentedCourse(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewOwnershipRepo(db)
	mid := uuid.Must(uuid.NewV4())
	pcid := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT EXISTS\(\s*SELECT 1 FROM presented_course pc`).
		WithArgs(pcid, mid).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	owns, err := r.OwnsPresentedCourse(context.Background(), mid, pcid)
	require.NoError(t, err)
	require.True(t, owns)
}

func TestOwnershipRepo_StudentRecordOf(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewOwnershipRepo(db)
	mid := uuid.Must(uuid.NewV4())
	srid := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT srid FROM student_record WHERE mid=\$1`).
		WithArgs(mid).
		WillReturnRows(pgxmock.NewRows([]string{"srid"}).AddRow(srid))
	got, err := r.StudentRecordOf(context.Background(), mid)
	require.NoError(t, err)
	require.Equal(t, srid, got)

	mock.ExpectQuery(`SELECT srid FROM student_record WHERE mid=\$1`).
		WithArgs(mid).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.StudentRecordOf(context.Background(), mid)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
