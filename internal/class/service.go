package class

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/activity"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/clock"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/schedule"
)

var ErrClassNotFound = errors.New("class not found")

type Service interface {
	CreateClass(ctx context.Context, req CreateClassRequest) (*GymClass, error)
	GetAll(ctx context.Context) ([]GymClass, error)
	GetByID(ctx context.Context, id int) (*GymClass, error)
	SetStatus(ctx context.Context, id int, status string) error
	AddSlot(ctx context.Context, classID int, req CreateSlotRequest) (*schedule.Slot, error)
	Upcoming(ctx context.Context, limit int) ([]schedule.Occurrence, error)
}

type service struct {
	repo Repository
	clk  clock.Clock
	log  *activity.Log
}

func NewService(repo Repository, clk clock.Clock, log *activity.Log) Service {
	return &service{
		repo: repo,
		clk:  clk,
		log:  log,
	}
}

func (s *service) CreateClass(ctx context.Context, req CreateClassRequest) (*GymClass, error) {
	c, err := s.repo.CreateClass(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Append(activity.TypeClassCreated,
		fmt.Sprintf("Class %q created", c.Name),
		nil,
		map[string]string{"class_id": strconv.Itoa(c.ID)})

	return c, nil
}

func (s *service) GetAll(ctx context.Context) ([]GymClass, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id int) (*GymClass, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrClassNotFound
	}
	return c, nil
}

func (s *service) SetStatus(ctx context.Context, id int, status string) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.log.Append(activity.TypeClassUpdated,
		fmt.Sprintf("Class %d set to %s", id, status),
		nil,
		map[string]string{"class_id": strconv.Itoa(id), "status": status})

	return nil
}

func (s *service) AddSlot(ctx context.Context, classID int, req CreateSlotRequest) (*schedule.Slot, error) {
	if _, err := s.repo.GetByID(ctx, classID); err != nil {
		return nil, ErrClassNotFound
	}

	slot := schedule.Slot{
		ClassID:   classID,
		DayOfWeek: resolveDay(req.Day),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := schedule.Validate(slot); err != nil {
		return nil, err
	}

	return s.repo.CreateSlot(ctx, slot)
}

// resolveDay accepts a numeric weekday index or a free-text day name.
// Out-of-range indices are left as-is for schedule.Validate to reject;
// unparseable names take the Monday fallback inside ParseDay.
func resolveDay(day string) int {
	if n, err := strconv.Atoi(day); err == nil {
		return n
	}
	return schedule.ParseDay(day)
}

func (s *service) Upcoming(ctx context.Context, limit int) ([]schedule.Occurrence, error) {
	classes, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	schedules := make([]schedule.ClassSchedule, 0, len(classes))
	for _, c := range classes {
		schedules = append(schedules, schedule.ClassSchedule{
			ClassID: c.ID,
			Active:  c.Status == StatusActive,
			Slots:   c.Slots,
		})
	}

	return schedule.Upcoming(schedules, s.clk.Now(), limit)
}
