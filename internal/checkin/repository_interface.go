package checkin

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, c *CheckIn) error
	SetCheckOut(ctx context.Context, id uuid.UUID, at time.Time) error
	GetSince(ctx context.Context, since time.Time) ([]CheckIn, error)
	GetByMember(ctx context.Context, memberID int) ([]CheckIn, error)
}
