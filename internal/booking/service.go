package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/activity"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/checkin"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/class"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/clock"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/member"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/metrics"
)

// ErrNoSuchOccurrence rejects enrollments for a date/time the class's
// recurring slots never produce.
var ErrNoSuchOccurrence = errors.New("class has no slot at that date and time")

type Service interface {
	Enroll(ctx context.Context, memberID, classID int, req EnrollRequest) (*Booking, error)
	Cancel(ctx context.Context, memberID int, bookingID uuid.UUID) (*Booking, error)
	Attend(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetMemberBookings(ctx context.Context, memberID int) ([]Booking, error)
	GetRoster(ctx context.Context, key OccurrenceKey) ([]BookingWithDetails, error)
}

type service struct {
	bookingRepo Repository
	classRepo   class.Repository
	memberRepo  member.Repository
	checkinRepo checkin.Repository
	log         *activity.Log
	clk         clock.Clock
}

func NewService(
	bookingRepo Repository,
	classRepo class.Repository,
	memberRepo member.Repository,
	checkinRepo checkin.Repository,
	log *activity.Log,
	clk clock.Clock,
) Service {
	return &service{
		bookingRepo: bookingRepo,
		classRepo:   classRepo,
		memberRepo:  memberRepo,
		checkinRepo: checkinRepo,
		log:         log,
		clk:         clk,
	}
}

func (s *service) Enroll(ctx context.Context, memberID, classID int, req EnrollRequest) (*Booking, error) {
	gymClass, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, class.ErrClassNotFound
	}

	if err := s.occurrenceExists(gymClass, req); err != nil {
		return nil, err
	}

	key := OccurrenceKey{ClassID: classID, Date: req.Date, StartTime: req.StartTime}
	roster, err := s.bookingRepo.GetRoster(ctx, key)
	if err != nil {
		return nil, err
	}

	b, err := Enroll(key, memberID, gymClass.Status, gymClass.MaxCapacity, roster, s.clk.Now())
	if err != nil {
		metrics.RecordEnrollment(enrollResult(err))
		return nil, err
	}

	// Pre-check passed against our snapshot; the insert re-enforces both
	// invariants against live rows.
	if err := s.bookingRepo.Insert(ctx, b, gymClass.MaxCapacity); err != nil {
		metrics.RecordEnrollment(enrollResult(err))
		return nil, err
	}

	metrics.RecordEnrollment("confirmed")
	s.log.Append(activity.TypeEnrollment,
		fmt.Sprintf("Enrolled in %q on %s %s", gymClass.Name, key.Date, key.StartTime),
		&memberID,
		map[string]string{
			"class_id":   strconv.Itoa(classID),
			"date":       key.Date,
			"start_time": key.StartTime,
		})

	return b, nil
}

// occurrenceExists verifies the requested date/time is actually produced
// by one of the class's slots: the weekday of the date and the start time
// must match a recurrence rule.
func (s *service) occurrenceExists(gymClass *class.GymClass, req EnrollRequest) error {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return ErrNoSuchOccurrence
	}

	for _, slot := range gymClass.Slots {
		if slot.DayOfWeek == int(date.Weekday()) && slot.StartTime == req.StartTime {
			return nil
		}
	}
	return ErrNoSuchOccurrence
}

func (s *service) Cancel(ctx context.Context, memberID int, bookingID uuid.UUID) (*Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if b.MemberID != memberID {
		return nil, ErrNotOwner
	}

	roster, err := s.bookingRepo.GetRoster(ctx, b.Key())
	if err != nil {
		return nil, err
	}

	cancelled, err := Cancel(bookingID, roster)
	if err != nil {
		return nil, err
	}

	// Guarded transition: loses cleanly if the status changed underneath us.
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, StatusConfirmed, StatusCancelled); err != nil {
		return nil, err
	}

	metrics.RecordCancellation()
	s.log.Append(activity.TypeCancellation,
		fmt.Sprintf("Cancelled booking for class %d on %s", b.ClassID, b.OccurrenceDate),
		&memberID,
		map[string]string{"booking_id": bookingID.String()})

	return cancelled, nil
}

func (s *service) Attend(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	roster, err := s.bookingRepo.GetRoster(ctx, b.Key())
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	attended, err := Attend(bookingID, roster, now)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, StatusConfirmed, StatusAttended); err != nil {
		return nil, err
	}

	// A class check-in is also an attendance record with the member
	// snapshot of the moment.
	m, err := s.memberRepo.FindByID(ctx, b.MemberID)
	if err == nil {
		record := &checkin.CheckIn{
			ID:             uuid.New(),
			MemberID:       m.ID,
			MemberName:     m.Name,
			MembershipType: m.MembershipType,
			Timestamp:      now,
			ClassID:        &b.ClassID,
			OccurrenceDate: &b.OccurrenceDate,
			StartTime:      &b.StartTime,
		}
		if err := s.checkinRepo.Insert(ctx, record); err == nil {
			metrics.RecordCheckIn("class")
		}
	}

	s.log.Append(activity.TypeCheckIn,
		fmt.Sprintf("Checked in to class %d on %s", b.ClassID, b.OccurrenceDate),
		&b.MemberID,
		map[string]string{"booking_id": bookingID.String()})

	return attended, nil
}

func (s *service) GetMemberBookings(ctx context.Context, memberID int) ([]Booking, error) {
	return s.bookingRepo.GetMemberBookings(ctx, memberID)
}

func (s *service) GetRoster(ctx context.Context, key OccurrenceKey) ([]BookingWithDetails, error) {
	return s.bookingRepo.GetRosterWithDetails(ctx, key)
}

func enrollResult(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrClassUnavailable):
		return "class_unavailable"
	default:
		return "error"
	}
}
