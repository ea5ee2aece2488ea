package engine

import (
	"strings"
	"time"

	"github.com/tartampluch/go-deadlines/internal/catalog"
)

// SortKey selects the primary ordering criterion of the deadlines table.
type SortKey int

const (
	SortDefault SortKey = iota
	SortArea
	SortAcronym
	SortDeadline
	SortCountdown
	SortLocation
)

// String returns the log-friendly name of the key.
func (k SortKey) String() string {
	switch k {
	case SortArea:
		return "area"
	case SortAcronym:
		return "acronym"
	case SortDeadline:
		return "deadline"
	case SortCountdown:
		return "countdown"
	case SortLocation:
		return "location"
	default:
		return "default"
	}
}

// SortSpec pairs a sort key with a direction. The zero value is the default
// composite ordering, which is the only key exempt from the direction toggle.
type SortSpec struct {
	Key  SortKey
	Desc bool
}

// dir returns the direction multiplier applied within sortable partitions.
func (s SortSpec) dir() int {
	if s.Desc {
		return -1
	}
	return 1
}

// Ranking is the area display-priority table, built once from the configured
// area order. Areas absent from the order share a single lowest-priority
// bucket.
type Ranking struct {
	priority map[string]int
	unknown  int
}

// NewRanking builds the lookup from an ordered area sequence.
func NewRanking(areas []string) *Ranking {
	p := make(map[string]int, len(areas))
	for i, a := range areas {
		if _, dup := p[a]; !dup {
			p[a] = i
		}
	}
	return &Ranking{priority: p, unknown: len(p)}
}

// Known reports whether the area label participates in the configured order.
// The empty label (unclassified entries) is never known.
func (r *Ranking) Known(area string) bool {
	_, ok := r.priority[area]
	return ok
}

// Priority returns the display rank of an area; unknown areas rank last.
func (r *Ranking) Priority(area string) int {
	if p, ok := r.priority[area]; ok {
		return p
	}
	return r.unknown
}

// Compare orders two entries under the given sort spec at the given instant.
// It returns a negative, zero or positive value and is total for any two
// well-formed entries: every branch ends in the acronym tie-break, so the
// resulting order is deterministic across refreshes.
//
// The deadline, countdown and area keys partition entries (resolvable vs.
// not, known area vs. not); direction flips ordering only within partitions,
// never across the partition boundary.
func Compare(a, b *catalog.Entry, spec SortSpec, rank *Ranking, now time.Time) int {
	switch spec.Key {
	case SortArea:
		return compareByArea(a, b, spec, rank)
	case SortAcronym:
		return spec.dir() * compareFold(a.Acronym, b.Acronym)
	case SortDeadline, SortCountdown:
		// Both keys mean "by resolved instant".
		return compareByResolved(a, b, spec, now)
	case SortLocation:
		return compareByLocation(a, b, spec)
	default:
		return compareDefault(a, b, now)
	}
}

// compareDefault implements the composite default ordering: dated entries by
// next occurrence ascending, then rolling/TBA entries, acronym breaking all
// ties. Direction is ignored by design.
func compareDefault(a, b *catalog.Entry, now time.Time) int {
	ta, okA := NextDeadline(a, now)
	tb, okB := NextDeadline(b, now)

	if okA != okB {
		if okA {
			return -1
		}
		return 1
	}
	if okA {
		if c := compareInstant(ta, tb); c != 0 {
			return c
		}
	}
	return compareFold(a.Acronym, b.Acronym)
}

// compareByArea orders by area display priority. Entries with an area outside
// the configured order stay in the trailing bucket regardless of direction;
// among themselves they order by raw label, then acronym.
func compareByArea(a, b *catalog.Entry, spec SortSpec, rank *Ranking) int {
	knownA, knownB := rank.Known(a.Area), rank.Known(b.Area)
	if knownA != knownB {
		if knownA {
			return -1
		}
		return 1
	}

	d := spec.dir()
	if knownA {
		if c := rank.Priority(a.Area) - rank.Priority(b.Area); c != 0 {
			return d * c
		}
	} else if c := strings.Compare(a.Area, b.Area); c != 0 {
		return d * c
	}
	return d * compareFold(a.Acronym, b.Acronym)
}

// compareByResolved orders by next occurrence. Unresolvable entries (rolling
// or TBA) behave as positive infinity: they trail resolvable entries under
// both directions.
func compareByResolved(a, b *catalog.Entry, spec SortSpec, now time.Time) int {
	ta, okA := NextDeadline(a, now)
	tb, okB := NextDeadline(b, now)

	if okA != okB {
		if okA {
			return -1
		}
		return 1
	}

	d := spec.dir()
	if okA {
		if c := compareInstant(ta, tb); c != 0 {
			return d * c
		}
	}
	return d * compareFold(a.Acronym, b.Acronym)
}

// compareByLocation orders by location text, with absent locations treated as
// empty strings.
func compareByLocation(a, b *catalog.Entry, spec SortSpec) int {
	d := spec.dir()
	if c := compareFold(a.Location, b.Location); c != 0 {
		return d * c
	}
	return d * compareFold(a.Acronym, b.Acronym)
}

func compareInstant(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case b.Before(a):
		return 1
	default:
		return 0
	}
}

// compareFold is the case-insensitive lexicographic compare used everywhere
// acronyms or free text are ordered. The raw compare fallback keeps the
// relation total when two strings differ only in case.
func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
