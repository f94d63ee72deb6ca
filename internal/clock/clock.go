package clock

import "time"

// Clock supplies the current instant in the gym's operating timezone.
// Injected everywhere time-of-day decisions are made so that schedule and
// attendance logic can be tested against fixed instants.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

func System(loc *time.Location) Clock {
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type fixedClock struct {
	t time.Time
}

// Fixed returns a clock pinned to t. Test helper.
func Fixed(t time.Time) Clock {
	return &fixedClock{t: t}
}

func (c *fixedClock) Now() time.Time {
	return c.t
}
