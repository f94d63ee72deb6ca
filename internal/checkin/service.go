package checkin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/activity"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/cache"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/clock"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/member"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/metrics"
)

const (
	statsCacheKey = "stats:dashboard"

	// Wide enough for every rolling window: week boundary and month start
	// both fall within the last 35 days.
	statsLookbackDays = 35

	birthdayHorizonDays = 7
)

type Stats struct {
	TodayCount        int             `json:"today_count"`
	WeekCount         int             `json:"week_count"`
	UpcomingBirthdays []member.Member `json:"upcoming_birthdays"`
	GeneratedAt       time.Time       `json:"generated_at"`
}

type MemberStats struct {
	MonthToDate int `json:"month_to_date"`
	TotalVisits int `json:"total_visits"`
}

type Service interface {
	CheckIn(ctx context.Context, memberID int) (*CheckIn, error)
	CheckOut(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*Stats, error)
	MemberStats(ctx context.Context, memberID int) (*MemberStats, error)
}

type service struct {
	repo       Repository
	memberRepo member.Repository
	log        *activity.Log
	clk        clock.Clock
	cache      *cache.Cache
}

// NewService wires the aggregator to storage. cache may be nil (tests,
// degraded mode); stats are then recomputed on every call.
func NewService(repo Repository, memberRepo member.Repository, log *activity.Log, clk clock.Clock, statsCache *cache.Cache) Service {
	return &service{
		repo:       repo,
		memberRepo: memberRepo,
		log:        log,
		clk:        clk,
		cache:      statsCache,
	}
}

// CheckIn records a plain gym-door visit, snapshotting the member's name
// and membership type as they are right now.
func (s *service) CheckIn(ctx context.Context, memberID int) (*CheckIn, error) {
	m, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, member.ErrMemberNotFound
	}

	record := &CheckIn{
		ID:             uuid.New(),
		MemberID:       m.ID,
		MemberName:     m.Name,
		MembershipType: m.MembershipType,
		Timestamp:      s.clk.Now(),
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, err
	}

	metrics.RecordCheckIn("door")
	s.log.Append(activity.TypeCheckIn,
		fmt.Sprintf("%s checked in", m.Name),
		&m.ID, nil)

	return record, nil
}

func (s *service) CheckOut(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetCheckOut(ctx, id, s.clk.Now())
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		var cached Stats
		if hit, _ := s.cache.GetJSON(ctx, statsCacheKey, &cached); hit {
			return &cached, nil
		}
	}

	now := s.clk.Now()
	checkins, err := s.repo.GetSince(ctx, now.AddDate(0, 0, -statsLookbackDays))
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TodayCount:        TodayCount(checkins, now),
		WeekCount:         WeeklyCount(checkins, now),
		UpcomingBirthdays: UpcomingBirthdays(members, now, birthdayHorizonDays),
		GeneratedAt:       now,
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, statsCacheKey, stats)
	}

	return stats, nil
}

func (s *service) MemberStats(ctx context.Context, memberID int) (*MemberStats, error) {
	checkins, err := s.repo.GetByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	return &MemberStats{
		MonthToDate: MonthToDateCount(checkins, memberID, now),
		TotalVisits: TotalVisits(checkins, memberID),
	}, nil
}
