package class

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/schedule"
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

var classCols = []string{"id", "name", "description", "duration_minutes", "max_capacity", "difficulty", "category", "price_cents", "status", "created_at"}
var slotCols = []string{"id", "class_id", "day_of_week", "start_time", "end_time"}

func TestCreateClass(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(`INSERT INTO classes`).
		WithArgs("Morning Yoga", "Sunrise flow", 60, 15, "Beginner", "Flexibility", int64(1500)).
		WillReturnRows(sqlmock.NewRows(classCols).
			AddRow(1, "Morning Yoga", "Sunrise flow", 60, 15, "Beginner", "Flexibility", int64(1500), "active", now))

	c, err := repo.CreateClass(context.Background(), CreateClassRequest{
		Name:            "Morning Yoga",
		Description:     "Sunrise flow",
		DurationMinutes: 60,
		MaxCapacity:     15,
		Difficulty:      "Beginner",
		Category:        "Flexibility",
		PriceCents:      1500,
	})

	require.NoError(t, err)
	require.Equal(t, 1, c.ID)
	require.Equal(t, StatusActive, c.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDWithSlots(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM classes WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(classCols).
			AddRow(1, "Morning Yoga", "", 60, 15, "Beginner", "Flexibility", int64(0), "active", now))

	mock.ExpectQuery(`SELECT .+ FROM class_slots WHERE class_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(slotCols).
			AddRow(1, 1, 1, "06:00", "07:00").
			AddRow(2, 1, 3, "06:00", "07:00"))

	c, err := repo.GetByID(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, c.Slots, 2)
	require.Equal(t, "06:00", c.Slots[0].StartTime)
	require.Equal(t, 3, c.Slots[1].DayOfWeek)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllGroupsSlots(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM classes ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(classCols).
			AddRow(1, "Yoga", "", 60, 15, "Beginner", "Flexibility", int64(0), "active", now).
			AddRow(2, "HIIT", "", 45, 20, "Advanced", "Cardio", int64(0), "inactive", now))

	mock.ExpectQuery(`SELECT .+ FROM class_slots ORDER BY class_id, day_of_week, start_time`).
		WillReturnRows(sqlmock.NewRows(slotCols).
			AddRow(1, 1, 1, "06:00", "07:00").
			AddRow(2, 2, 2, "18:00", "18:45"))

	classes, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, classes, 2)
	require.Len(t, classes[0].Slots, 1)
	require.Len(t, classes[1].Slots, 1)
	require.Equal(t, "18:00", classes[1].Slots[0].StartTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	query := regexp.QuoteMeta(`UPDATE classes SET status = $2 WHERE id = $1`)

	mock.ExpectExec(query).
		WithArgs(1, StatusInactive).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), 1, StatusInactive)
	require.NoError(t, err)

	mock.ExpectExec(query).
		WithArgs(99, StatusInactive).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(context.Background(), 99, StatusInactive)
	require.ErrorIs(t, err, ErrClassNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSlot(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(`INSERT INTO class_slots`).
		WithArgs(1, 5, "18:00", "19:00").
		WillReturnRows(sqlmock.NewRows(slotCols).AddRow(7, 1, 5, "18:00", "19:00"))

	created, err := repo.CreateSlot(context.Background(), schedule.Slot{
		ClassID: 1, DayOfWeek: 5, StartTime: "18:00", EndTime: "19:00",
	})

	require.NoError(t, err)
	require.Equal(t, 7, created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
