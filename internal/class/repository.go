package class

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/schedule"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const classColumns = `id, name, description, duration_minutes, max_capacity, difficulty, category, price_cents, status, created_at`

// Slot times live in time columns; the HH:MM wall-clock strings the
// resolver compares are produced by to_char here, in one place.
const slotColumns = `id, class_id, day_of_week, to_char(start_time, 'HH24:MI') AS start_time, to_char(end_time, 'HH24:MI') AS end_time`

func (r *repository) CreateClass(ctx context.Context, req CreateClassRequest) (*GymClass, error) {
	query := `
		INSERT INTO classes (name, description, duration_minutes, max_capacity, difficulty, category, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'active')
		RETURNING ` + classColumns

	var c GymClass
	err := r.db.GetContext(ctx, &c, query,
		req.Name, req.Description, req.DurationMinutes, req.MaxCapacity,
		req.Difficulty, req.Category, req.PriceCents)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetAll(ctx context.Context) ([]GymClass, error) {
	var classes []GymClass
	err := r.db.SelectContext(ctx, &classes,
		`SELECT `+classColumns+` FROM classes ORDER BY id`)
	if err != nil {
		return nil, err
	}

	var slots []schedule.Slot
	err = r.db.SelectContext(ctx, &slots,
		`SELECT `+slotColumns+` FROM class_slots ORDER BY class_id, day_of_week, start_time`)
	if err != nil {
		return nil, err
	}

	byClass := make(map[int][]schedule.Slot, len(classes))
	for _, s := range slots {
		byClass[s.ClassID] = append(byClass[s.ClassID], s)
	}
	for i := range classes {
		classes[i].Slots = byClass[classes[i].ID]
	}

	return classes, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*GymClass, error) {
	var c GymClass
	err := r.db.GetContext(ctx, &c,
		`SELECT `+classColumns+` FROM classes WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	slots, err := r.GetSlots(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Slots = slots

	return &c, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE classes SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrClassNotFound
	}

	return nil
}

func (r *repository) CreateSlot(ctx context.Context, slot schedule.Slot) (*schedule.Slot, error) {
	query := `
		INSERT INTO class_slots (class_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3::time, $4::time)
		RETURNING ` + slotColumns

	var created schedule.Slot
	err := r.db.GetContext(ctx, &created, query,
		slot.ClassID, slot.DayOfWeek, slot.StartTime, slot.EndTime)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetSlots(ctx context.Context, classID int) ([]schedule.Slot, error) {
	var slots []schedule.Slot
	err := r.db.SelectContext(ctx, &slots,
		`SELECT `+slotColumns+` FROM class_slots WHERE class_id = $1 ORDER BY day_of_week, start_time`,
		classID)
	if err != nil {
		return nil, err
	}
	return slots, nil
}
