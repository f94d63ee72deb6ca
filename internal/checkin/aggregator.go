package checkin

import (
	"time"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/member"
)

// Rolling-window attendance aggregations. Everything here is a pure
// function over an immutable snapshot plus a reference instant (already in
// the operating timezone): same inputs, same answer, which is what allows
// the stats endpoint to cache results. Records with a zero timestamp are
// skipped rather than failing; reporting degrades gracefully on bad data.

func localMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TodayCount counts check-ins within [midnight, midnight+24h) of now's day.
func TodayCount(checkins []CheckIn, now time.Time) int {
	start := localMidnight(now)
	end := start.AddDate(0, 0, 1)

	n := 0
	for _, c := range checkins {
		if c.Timestamp.IsZero() {
			continue
		}
		if !c.Timestamp.Before(start) && c.Timestamp.Before(end) {
			n++
		}
	}
	return n
}

// WeekBoundary is the start of the gym week: Monday 02:00 local, not
// midnight. Late Sunday sessions run past midnight and still belong to the
// closing week, so a reference instant on Monday before 02:00 rolls the
// boundary back a full seven days.
func WeekBoundary(now time.Time) time.Time {
	daysBack := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		daysBack = 6
	}

	monday := localMidnight(now).AddDate(0, 0, -daysBack)
	boundary := monday.Add(2 * time.Hour)

	if now.Before(boundary) {
		boundary = boundary.AddDate(0, 0, -7)
	}
	return boundary
}

// WeeklyCount counts check-ins since the current week boundary.
func WeeklyCount(checkins []CheckIn, now time.Time) int {
	boundary := WeekBoundary(now)

	n := 0
	for _, c := range checkins {
		if c.Timestamp.IsZero() {
			continue
		}
		if !c.Timestamp.Before(boundary) {
			n++
		}
	}
	return n
}

// MonthToDateCount counts one member's check-ins since the first of now's
// month at local midnight.
func MonthToDateCount(checkins []CheckIn, memberID int, now time.Time) int {
	boundary := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	n := 0
	for _, c := range checkins {
		if c.MemberID != memberID || c.Timestamp.IsZero() {
			continue
		}
		if !c.Timestamp.Before(boundary) {
			n++
		}
	}
	return n
}

func TotalVisits(checkins []CheckIn, memberID int) int {
	n := 0
	for _, c := range checkins {
		if c.MemberID == memberID {
			n++
		}
	}
	return n
}

// UpcomingBirthdays lists members whose birthday, placed in now's year,
// falls within [today, today+horizonDays]. A birthday that already passed
// this year is not carried into next year even when the horizon crosses
// New Year: a Dec 30 reference does not pick up a Jan 2 birthday. Known
// boundary gap, kept deliberately; flagged for product review.
func UpcomingBirthdays(members []member.Member, now time.Time, horizonDays int) []member.Member {
	today := localMidnight(now)
	end := today.AddDate(0, 0, horizonDays)

	var upcoming []member.Member
	for _, m := range members {
		if m.DateOfBirth == nil {
			continue
		}
		birthday := time.Date(now.Year(), m.DateOfBirth.Month(), m.DateOfBirth.Day(), 0, 0, 0, 0, now.Location())
		if !birthday.Before(today) && !birthday.After(end) {
			upcoming = append(upcoming, m)
		}
	}
	return upcoming
}
