package booking

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Insert persists a booking, re-enforcing the duplicate and capacity
	// invariants inside the statement itself.
	Insert(ctx context.Context, b *Booking, capacity int) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetRoster(ctx context.Context, key OccurrenceKey) ([]Booking, error)
	GetRosterWithDetails(ctx context.Context, key OccurrenceKey) ([]BookingWithDetails, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) error
	GetMemberBookings(ctx context.Context, memberID int) ([]Booking, error)
}
