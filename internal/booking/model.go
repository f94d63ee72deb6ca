package booking

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusConfirmed = "confirmed"
	StatusAttended  = "attended"
	StatusCancelled = "cancelled"
)

// OccurrenceKey identifies one concrete instance of a recurring class
// slot: the class, the calendar date and the start time together.
type OccurrenceKey struct {
	ClassID   int    `json:"class_id"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
}

type Booking struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ClassID        int       `db:"class_id" json:"class_id"`
	MemberID       int       `db:"member_id" json:"member_id"`
	OccurrenceDate string    `db:"occurrence_date" json:"occurrence_date"`
	StartTime      string    `db:"start_time" json:"start_time"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

func (b Booking) Key() OccurrenceKey {
	return OccurrenceKey{
		ClassID:   b.ClassID,
		Date:      b.OccurrenceDate,
		StartTime: b.StartTime,
	}
}

type BookingWithDetails struct {
	Booking
	ClassName   string `db:"class_name" json:"class_name"`
	MemberName  string `db:"member_name" json:"member_name"`
	MemberEmail string `db:"member_email" json:"member_email"`
}

type EnrollRequest struct {
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"required"`
}
