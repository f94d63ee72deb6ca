package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/logger"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/metrics"
)

// ErrConfiguration marks malformed slot data (weekday out of range,
// start >= end, bad HH:MM). It signals bad data upstream, not a business
// rejection, and is logged at error level where it surfaces.
var ErrConfiguration = errors.New("invalid slot configuration")

const dateLayout = "2006-01-02"

// Slot is one weekly recurrence rule owned by a class. Times are local
// wall-clock HH:MM in the operating timezone; slots never span midnight,
// so lexicographic comparison of zero-padded HH:MM strings is ordering.
type Slot struct {
	ID        int    `db:"id" json:"id"`
	ClassID   int    `db:"class_id" json:"class_id"`
	DayOfWeek int    `db:"day_of_week" json:"day_of_week"` // 0 = Sunday
	StartTime string `db:"start_time" json:"start_time"`   // HH:MM
	EndTime   string `db:"end_time" json:"end_time"`       // HH:MM
}

// Occurrence is one concrete future instance of a recurring slot.
// Derived, never persisted.
type Occurrence struct {
	ClassID   int    `json:"class_id"`
	SlotID    int    `json:"slot_id"`
	Date      string `json:"date"` // YYYY-MM-DD in the operating timezone
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ClassSchedule is the resolver's view of a class: just enough to decide
// whether it shows up in upcoming listings.
type ClassSchedule struct {
	ClassID int
	Active  bool
	Slots   []Slot
}

// Validate rejects malformed recurrence rules before they are persisted
// or resolved.
func Validate(s Slot) error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return fmt.Errorf("%w: day_of_week %d out of range", ErrConfiguration, s.DayOfWeek)
	}
	if !validHHMM(s.StartTime) || !validHHMM(s.EndTime) {
		return fmt.Errorf("%w: malformed time %q-%q", ErrConfiguration, s.StartTime, s.EndTime)
	}
	if s.StartTime >= s.EndTime {
		return fmt.Errorf("%w: start %s not before end %s", ErrConfiguration, s.StartTime, s.EndTime)
	}
	return nil
}

func validHHMM(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

// NextOccurrence resolves the next concrete instance of slot at or after ref.
// ref must already be in the operating timezone.
func NextOccurrence(slot Slot, ref time.Time) (Occurrence, error) {
	if err := Validate(slot); err != nil {
		logger.Error("slot configuration rejected", "slot_id", slot.ID, "class_id", slot.ClassID, "err", err)
		return Occurrence{}, err
	}

	currentDay := int(ref.Weekday())
	currentTime := ref.Format("15:04")

	var daysAhead int
	switch {
	case slot.DayOfWeek == currentDay && slot.StartTime > currentTime:
		daysAhead = 0
	case slot.DayOfWeek > currentDay:
		daysAhead = slot.DayOfWeek - currentDay
	default:
		// Earlier in the week, or today but already started: next week.
		daysAhead = 7 - (currentDay - slot.DayOfWeek)
	}

	return Occurrence{
		ClassID:   slot.ClassID,
		SlotID:    slot.ID,
		Date:      ref.AddDate(0, 0, daysAhead).Format(dateLayout),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	}, nil
}

// NextForClass picks the soonest occurrence across a class's slots.
// Returns ok=false for a class with no slots.
func NextForClass(slots []Slot, ref time.Time) (Occurrence, bool, error) {
	var best Occurrence
	found := false
	for _, s := range slots {
		occ, err := NextOccurrence(s, ref)
		if err != nil {
			return Occurrence{}, false, err
		}
		if !found || occurrenceLess(occ, best) {
			best = occ
			found = true
		}
	}
	return best, found, nil
}

// Upcoming computes one nearest occurrence per active class, sorted by
// (date, start time, class id), truncated to limit. Classes with no slots
// are excluded, not an error.
func Upcoming(classes []ClassSchedule, ref time.Time, limit int) ([]Occurrence, error) {
	occurrences := make([]Occurrence, 0, len(classes))
	for _, c := range classes {
		if !c.Active {
			continue
		}
		occ, ok, err := NextForClass(c.Slots, ref)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		occurrences = append(occurrences, occ)
	}

	sort.Slice(occurrences, func(i, j int) bool {
		return occurrenceLess(occurrences[i], occurrences[j])
	})

	if limit > 0 && len(occurrences) > limit {
		occurrences = occurrences[:limit]
	}
	return occurrences, nil
}

func occurrenceLess(a, b Occurrence) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	if a.StartTime != b.StartTime {
		return a.StartTime < b.StartTime
	}
	return a.ClassID < b.ClassID
}

var dayNames = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// ParseDay maps a free-text day name to its weekday index. Legacy imports
// carry arbitrary casing and the occasional typo; an unrecognized name
// falls back to Monday and is reported as a data-quality warning rather
// than failing the request.
func ParseDay(name string) int {
	if d, ok := dayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d
	}
	logger.Warn("unrecognized weekday name, falling back to Monday", "name", name)
	metrics.RecordScheduleDayFallback()
	return 1
}
