package member

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, role, membershipType string, dateOfBirth *time.Time) (*Member, error)
	FindByID(ctx context.Context, id int) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]Member, error)
}
