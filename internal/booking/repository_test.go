package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

const insertPattern = `INSERT INTO bookings`

func TestInsert(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	b := &Booking{
		ID:             uuid.New(),
		ClassID:        1,
		MemberID:       2,
		OccurrenceDate: "2026-08-24",
		StartTime:      "06:00",
		Status:         StatusConfirmed,
		CreatedAt:      time.Now(),
	}

	// seat available: one row inserted
	mock.ExpectExec(insertPattern).
		WithArgs(b.ID, b.ClassID, b.MemberID, b.OccurrenceDate, b.StartTime, b.Status, b.CreatedAt, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), b, 10)
	require.NoError(t, err)

	// occurrence full: guard clause filters the insert to zero rows
	mock.ExpectExec(insertPattern).
		WithArgs(b.ID, b.ClassID, b.MemberID, b.OccurrenceDate, b.StartTime, b.Status, b.CreatedAt, 10).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Insert(context.Background(), b, 10)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// concurrent duplicate: the partial unique index fires
	mock.ExpectExec(insertPattern).
		WithArgs(b.ID, b.ClassID, b.MemberID, b.OccurrenceDate, b.StartTime, b.Status, b.CreatedAt, 10).
		WillReturnError(&pq.Error{Code: "23505"})

	err = repo.Insert(context.Background(), b, 10)
	require.ErrorIs(t, err, ErrDuplicateBooking)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusGuard(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	id := uuid.New()
	query := regexp.QuoteMeta(`UPDATE bookings SET status = $3 WHERE id = $1 AND status = $2`)

	mock.ExpectExec(query).
		WithArgs(id, StatusConfirmed, StatusCancelled).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), id, StatusConfirmed, StatusCancelled)
	require.NoError(t, err)

	// already transitioned: the guard matches no row
	mock.ExpectExec(query).
		WithArgs(id, StatusConfirmed, StatusAttended).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(context.Background(), id, StatusConfirmed, StatusAttended)
	require.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDAndRoster(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	id := uuid.New()
	now := time.Now()
	cols := []string{"id", "class_id", "member_id", "occurrence_date", "start_time", "status", "created_at"}

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(id, 1, 2, "2026-08-24", "06:00", StatusConfirmed, now))

	b, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, b.ID)
	require.Equal(t, "2026-08-24", b.OccurrenceDate)
	require.Equal(t, "06:00", b.StartTime)

	rows := sqlmock.NewRows(cols).
		AddRow(uuid.New(), 1, 2, "2026-08-24", "06:00", StatusConfirmed, now).
		AddRow(uuid.New(), 1, 3, "2026-08-24", "06:00", StatusCancelled, now)

	mock.ExpectQuery(`SELECT .+ FROM bookings\s+WHERE class_id = \$1`).
		WithArgs(1, "2026-08-24", "06:00").
		WillReturnRows(rows)

	roster, err := repo.GetRoster(context.Background(), OccurrenceKey{ClassID: 1, Date: "2026-08-24", StartTime: "06:00"})
	require.NoError(t, err)
	require.Len(t, roster, 2)
	require.Equal(t, 1, ActiveCount(roster))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMemberBookings(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	cols := []string{"id", "class_id", "member_id", "occurrence_date", "start_time", "status", "created_at"}
	rows := sqlmock.NewRows(cols).
		AddRow(uuid.New(), 1, 7, "2026-08-24", "06:00", StatusConfirmed, now).
		AddRow(uuid.New(), 2, 7, "2026-08-20", "18:00", StatusAttended, now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT .+ FROM bookings\s+WHERE member_id = \$1`).
		WithArgs(7).
		WillReturnRows(rows)

	list, err := repo.GetMemberBookings(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, 7, list[0].MemberID)

	require.NoError(t, mock.ExpectationsWereMet())
}
