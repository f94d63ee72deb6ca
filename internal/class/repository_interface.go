package class

import (
	"context"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/schedule"
)

type Repository interface {
	CreateClass(ctx context.Context, req CreateClassRequest) (*GymClass, error)
	GetAll(ctx context.Context) ([]GymClass, error)
	GetByID(ctx context.Context, id int) (*GymClass, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	CreateSlot(ctx context.Context, slot schedule.Slot) (*schedule.Slot, error)
	GetSlots(ctx context.Context, classID int) ([]schedule.Slot, error)
}
