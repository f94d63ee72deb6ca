package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Expected, recoverable rejections. Handlers map each to its own 4xx
// status and machine-readable code; none of these indicate a defect.
var (
	ErrClassUnavailable = errors.New("class is not open for enrollment")
	ErrDuplicateBooking = errors.New("member already enrolled for this occurrence")
	ErrCapacityExceeded = errors.New("class occurrence is at capacity")
	ErrInvalidState     = errors.New("booking is not in a state that allows this transition")
	ErrNotToday         = errors.New("check-in is only allowed on the occurrence date")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotOwner         = errors.New("booking belongs to another member")
)

// The ledger functions below are pure: they validate an operation against
// an in-memory roster snapshot and return the booking to persist. Capacity
// is always a projection over the roster, never a stored counter, so a
// cancelled booking frees a seat with nothing to decrement. The snapshot
// check is a pre-check only; the repository re-enforces uniqueness and
// capacity inside the inserting statement (two concurrent callers can both
// pass a stale snapshot).

// ActiveCount is the number of bookings that consume capacity.
func ActiveCount(roster []Booking) int {
	n := 0
	for _, b := range roster {
		if b.Status == StatusConfirmed || b.Status == StatusAttended {
			n++
		}
	}
	return n
}

// Enroll validates a new enrollment for key against the occurrence's
// roster. Checks run in order: class status, duplicate, capacity; the
// first failure wins.
func Enroll(key OccurrenceKey, memberID int, classStatus string, capacity int, roster []Booking, now time.Time) (*Booking, error) {
	if classStatus != "active" {
		return nil, ErrClassUnavailable
	}

	for _, b := range roster {
		if b.MemberID == memberID && b.Status != StatusCancelled {
			return nil, ErrDuplicateBooking
		}
	}

	if ActiveCount(roster) >= capacity {
		return nil, ErrCapacityExceeded
	}

	return &Booking{
		ID:             uuid.New(),
		ClassID:        key.ClassID,
		MemberID:       memberID,
		OccurrenceDate: key.Date,
		StartTime:      key.StartTime,
		Status:         StatusConfirmed,
		CreatedAt:      now,
	}, nil
}

// Cancel transitions confirmed -> cancelled. Attended and already
// cancelled bookings cannot be cancelled; re-enrolling after a cancel
// creates a new booking.
func Cancel(bookingID uuid.UUID, roster []Booking) (*Booking, error) {
	b, ok := find(roster, bookingID)
	if !ok {
		return nil, ErrBookingNotFound
	}
	if b.Status != StatusConfirmed {
		return nil, ErrInvalidState
	}

	b.Status = StatusCancelled
	return &b, nil
}

// Attend transitions confirmed -> attended when the member checks in at
// the class. Only allowed on the occurrence's calendar date, evaluated in
// the operating timezone.
func Attend(bookingID uuid.UUID, roster []Booking, now time.Time) (*Booking, error) {
	b, ok := find(roster, bookingID)
	if !ok {
		return nil, ErrBookingNotFound
	}
	if b.Status != StatusConfirmed {
		return nil, ErrInvalidState
	}
	if b.OccurrenceDate != now.Format("2006-01-02") {
		return nil, ErrNotToday
	}

	b.Status = StatusAttended
	return &b, nil
}

func find(roster []Booking, id uuid.UUID) (Booking, bool) {
	for _, b := range roster {
		if b.ID == id {
			return b, true
		}
	}
	return Booking{}, false
}
