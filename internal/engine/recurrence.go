package engine

import (
	"time"

	"github.com/tartampluch/go-deadlines/internal/catalog"
)

// NextOccurrence resolves the next annual occurrence of a recurring deadline
// strictly after the pivot instant.
//
// The candidate is first constructed in the pivot's year. A candidate at or
// before the pivot counts as already passed and rolls over to the following
// year, consistent with the countdown reporting "Closed" at target == now.
// Feb 29 deadlines resolve to Mar 1 in non-leap years via time.Date
// normalization.
func NextOccurrence(d *catalog.Deadline, pivot time.Time) time.Time {
	candidate := d.At(pivot.Year())
	if !candidate.After(pivot) {
		candidate = d.At(pivot.Year() + 1)
	}
	return candidate
}

// NextDeadline returns the entry's next occurrence, or false for entries with
// no resolvable instant (rolling or TBA).
func NextDeadline(e *catalog.Entry, now time.Time) (time.Time, bool) {
	if !e.Dated() {
		return time.Time{}, false
	}
	return NextOccurrence(e.Deadline, now), true
}
