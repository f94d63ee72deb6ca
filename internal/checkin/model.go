package checkin

import (
	"time"

	"github.com/google/uuid"
)

// CheckIn is a point-in-time attendance record. Member name and
// membership type are denormalized snapshots taken at check-in: later
// membership edits must not rewrite history. Immutable once created
// except for CheckOutTime.
type CheckIn struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	MemberID       int        `db:"member_id" json:"member_id"`
	MemberName     string     `db:"member_name" json:"member_name"`
	MembershipType string     `db:"membership_type" json:"membership_type"`
	Timestamp      time.Time  `db:"ts" json:"timestamp"`
	CheckOutTime   *time.Time `db:"checkout_time" json:"checkout_time,omitempty"`

	// Set when the check-in is tied to a class occurrence rather than
	// plain gym-door entry.
	ClassID        *int    `db:"class_id" json:"class_id,omitempty"`
	OccurrenceDate *string `db:"occurrence_date" json:"occurrence_date,omitempty"`
	StartTime      *string `db:"start_time" json:"start_time,omitempty"`
}
