package checkin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrCheckInNotFound = errors.New("check-in not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const checkinColumns = `id, member_id, member_name, membership_type, ts, checkout_time, class_id, to_char(occurrence_date, 'YYYY-MM-DD') AS occurrence_date, to_char(start_time, 'HH24:MI') AS start_time`

func (r *repository) Insert(ctx context.Context, c *CheckIn) error {
	query := `
		INSERT INTO checkins (id, member_id, member_name, membership_type, ts, class_id, occurrence_date, start_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::time)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.MemberID, c.MemberName, c.MembershipType, c.Timestamp,
		c.ClassID, c.OccurrenceDate, c.StartTime)
	return err
}

func (r *repository) SetCheckOut(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE checkins SET checkout_time = $2 WHERE id = $1 AND checkout_time IS NULL`,
		id, at)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCheckInNotFound
	}

	return nil
}

func (r *repository) GetSince(ctx context.Context, since time.Time) ([]CheckIn, error) {
	var checkins []CheckIn
	err := r.db.SelectContext(ctx, &checkins,
		`SELECT `+checkinColumns+` FROM checkins WHERE ts >= $1 ORDER BY ts DESC`, since)
	if err != nil {
		return nil, err
	}
	return checkins, nil
}

func (r *repository) GetByMember(ctx context.Context, memberID int) ([]CheckIn, error) {
	var checkins []CheckIn
	err := r.db.SelectContext(ctx, &checkins,
		`SELECT `+checkinColumns+` FROM checkins WHERE member_id = $1 ORDER BY ts DESC`, memberID)
	if err != nil {
		return nil, err
	}
	return checkins, nil
}
