package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingColumns = `id, class_id, member_id, to_char(occurrence_date, 'YYYY-MM-DD') AS occurrence_date, to_char(start_time, 'HH24:MI') AS start_time, status, created_at`

// Insert is where the enrollment invariants are actually guaranteed. The
// in-memory ledger check runs against a snapshot that may already be
// stale, so the statement re-checks capacity against live rows, and the
// partial unique index on (class_id, occurrence_date, start_time,
// member_id) WHERE status <> 'cancelled' rejects duplicates. Both checks
// happen atomically with the insert.
func (r *repository) Insert(ctx context.Context, b *Booking, capacity int) error {
	query := `
		INSERT INTO bookings (id, class_id, member_id, occurrence_date, start_time, status, created_at)
		SELECT $1, $2, $3, $4::date, $5::time, $6, $7
		WHERE (
			SELECT COUNT(*) FROM bookings
			WHERE class_id = $2
			  AND occurrence_date = $4::date
			  AND start_time = $5::time
			  AND status IN ('confirmed', 'attended')
		) < $8
	`

	result, err := r.db.ExecContext(ctx, query,
		b.ID, b.ClassID, b.MemberID, b.OccurrenceDate, b.StartTime, b.Status, b.CreatedAt, capacity)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateBooking
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCapacityExceeded
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) GetRoster(ctx context.Context, key OccurrenceKey) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE class_id = $1 AND occurrence_date = $2::date AND start_time = $3::time
		ORDER BY created_at
	`

	var roster []Booking
	err := r.db.SelectContext(ctx, &roster, query, key.ClassID, key.Date, key.StartTime)
	if err != nil {
		return nil, err
	}
	return roster, nil
}

func (r *repository) GetRosterWithDetails(ctx context.Context, key OccurrenceKey) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.class_id,
			b.member_id,
			to_char(b.occurrence_date, 'YYYY-MM-DD') AS occurrence_date,
			to_char(b.start_time, 'HH24:MI') AS start_time,
			b.status,
			b.created_at,
			c.name AS class_name,
			m.name AS member_name,
			m.email AS member_email
		FROM bookings b
		JOIN classes c ON b.class_id = c.id
		JOIN members m ON b.member_id = m.id
		WHERE b.class_id = $1 AND b.occurrence_date = $2::date AND b.start_time = $3::time
		ORDER BY b.created_at
	`

	var roster []BookingWithDetails
	err := r.db.SelectContext(ctx, &roster, query, key.ClassID, key.Date, key.StartTime)
	if err != nil {
		return nil, err
	}
	return roster, nil
}

// UpdateStatus applies a guarded transition: the row must still be in the
// from status, so a concurrent transition loses cleanly.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $3 WHERE id = $1 AND status = $2`,
		id, from, to)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrInvalidState
	}

	return nil
}

func (r *repository) GetMemberBookings(ctx context.Context, memberID int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE member_id = $1
		ORDER BY occurrence_date DESC, start_time DESC, created_at DESC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, memberID)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
