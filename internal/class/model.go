package class

import (
	"time"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/schedule"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	// StatusFull is advisory only. Actual fullness is always recomputed
	// from the live roster against MaxCapacity.
	StatusFull = "full"
)

type GymClass struct {
	ID              int             `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Description     string          `db:"description" json:"description"`
	DurationMinutes int             `db:"duration_minutes" json:"duration_minutes"`
	MaxCapacity     int             `db:"max_capacity" json:"max_capacity"`
	Difficulty      string          `db:"difficulty" json:"difficulty"`
	Category        string          `db:"category" json:"category"`
	PriceCents      int64           `db:"price_cents" json:"price_cents"`
	Status          string          `db:"status" json:"status"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	Slots           []schedule.Slot `db:"-" json:"slots"`
}

type CreateClassRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	MaxCapacity     int    `json:"max_capacity" binding:"required,min=1"`
	Difficulty      string `json:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced"`
	Category        string `json:"category" binding:"required,oneof=Cardio Strength Flexibility Mixed Specialized"`
	PriceCents      int64  `json:"price_cents" binding:"min=0"`
}

// CreateSlotRequest carries either a weekday index ("0".."6") or a
// free-text day name ("monday") in Day; legacy imports only have names.
type CreateSlotRequest struct {
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive full"`
}
