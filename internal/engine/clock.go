package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Every recurrence and countdown computation is a pure function of
// (entry, now), so injecting the clock makes the whole engine testable.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
