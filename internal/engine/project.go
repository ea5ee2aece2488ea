package engine

import (
	"sort"
	"time"

	"github.com/tartampluch/go-deadlines/internal/catalog"
	"github.com/tartampluch/go-deadlines/internal/config"
)

// Row is a combined-view entry annotated with its resolved area label.
type Row struct {
	Entry *catalog.Entry
	Area  string
}

// Group is one section of the sectioned view.
type Group struct {
	Label   string
	Entries []*catalog.Entry
}

// Projector turns the immutable catalog into ordered views. It holds no
// mutable state: every projection is recomputed from (catalog, spec, now),
// so identical inputs always yield identical output.
type Projector struct {
	entries []*catalog.Entry
	areas   []string
	rank    *Ranking
}

// NewProjector builds a projector over a validated catalog. The ranking
// table is constructed once here, not cached globally.
func NewProjector(c *catalog.Catalog) *Projector {
	entries := make([]*catalog.Entry, len(c.Entries))
	for i := range c.Entries {
		entries[i] = &c.Entries[i]
	}
	return &Projector{
		entries: entries,
		areas:   c.Areas,
		rank:    NewRanking(c.Areas),
	}
}

// Ranking exposes the area priority table for callers that sort externally.
func (p *Projector) Ranking() *Ranking {
	return p.rank
}

// Entries returns the projected entry set in catalog order.
func (p *Projector) Entries() []*catalog.Entry {
	return p.entries
}

// ResolvedArea maps an entry to its display group: its own area when part of
// the configured order, the fixed Other bucket otherwise.
func (p *Projector) ResolvedArea(e *catalog.Entry) string {
	if p.rank.Known(e.Area) {
		return e.Area
	}
	return config.AreaOtherLabel
}

// Combined returns every entry in one flat sequence ordered under the active
// sort spec.
func (p *Projector) Combined(spec SortSpec, now time.Time) []Row {
	ordered := p.sorted(p.entries, spec, now)

	rows := make([]Row, len(ordered))
	for i, e := range ordered {
		rows[i] = Row{Entry: e, Area: p.ResolvedArea(e)}
	}
	return rows
}

// Sectioned partitions the catalog by resolved area label. Groups follow the
// configured area order with the Other bucket last; empty groups are omitted.
// Every entry appears in exactly one group.
func (p *Projector) Sectioned(spec SortSpec, now time.Time) []Group {
	buckets := make(map[string][]*catalog.Entry, len(p.areas)+1)
	for _, e := range p.entries {
		label := p.ResolvedArea(e)
		buckets[label] = append(buckets[label], e)
	}

	labels := make([]string, 0, len(p.areas)+1)
	labels = append(labels, p.areas...)
	labels = append(labels, config.AreaOtherLabel)

	groups := make([]Group, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if seen[label] {
			continue
		}
		seen[label] = true
		members := buckets[label]
		if len(members) == 0 {
			continue
		}
		groups = append(groups, Group{
			Label:   label,
			Entries: p.sorted(members, spec, now),
		})
	}
	return groups
}

// Upcoming returns the entries with the nearest resolvable next occurrence,
// ordered by ascending instant with acronym breaking exact-instant ties.
// The projection is independent of the active sort spec and view mode.
func (p *Projector) Upcoming(now time.Time) []*catalog.Entry {
	dated := make([]*catalog.Entry, 0, len(p.entries))
	for _, e := range p.entries {
		if e.Dated() {
			dated = append(dated, e)
		}
	}

	sort.Slice(dated, func(i, j int) bool {
		ti := NextOccurrence(dated[i].Deadline, now)
		tj := NextOccurrence(dated[j].Deadline, now)
		if c := compareInstant(ti, tj); c != 0 {
			return c < 0
		}
		return compareFold(dated[i].Acronym, dated[j].Acronym) < 0
	})

	if len(dated) > config.UpcomingCount {
		dated = dated[:config.UpcomingCount]
	}
	return dated
}

// ClosingSoon counts dated entries whose next occurrence falls within the
// given window. Used for the tray status.
func (p *Projector) ClosingSoon(now time.Time, window time.Duration) int {
	count := 0
	limit := now.Add(window)
	for _, e := range p.entries {
		if t, ok := NextDeadline(e, now); ok && !t.After(limit) {
			count++
		}
	}
	return count
}

// sorted returns an ordered copy; the input slice is never mutated.
func (p *Projector) sorted(entries []*catalog.Entry, spec SortSpec, now time.Time) []*catalog.Entry {
	out := make([]*catalog.Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool {
		return Compare(out[i], out[j], spec, p.rank, now) < 0
	})
	return out
}
