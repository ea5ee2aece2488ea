package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-deadlines/internal/catalog"
	"github.com/tartampluch/go-deadlines/internal/config"
)

func testCatalog() *catalog.Catalog {
	mk := func(id, acronym, area string, d *catalog.Deadline) catalog.Entry {
		return catalog.Entry{
			ID:       id,
			Acronym:  acronym,
			Name:     acronym + " Conference",
			Area:     area,
			Website:  "https://example.org/" + id,
			Deadline: d,
		}
	}
	return &catalog.Catalog{
		Areas: []string{"Machine Learning", "Systems", "Theory"},
		Entries: []catalog.Entry{
			mk("icml", "ICML", "Machine Learning", newDeadline(1, 28, 23, 59, "+00:00")),
			mk("neurips", "NeurIPS", "Machine Learning", newDeadline(5, 15, 20, 0, "+00:00")),
			mk("osdi", "OSDI", "Systems", newDeadline(12, 3, 23, 59, "+00:00")),
			mk("arr", "ARR", "Computational Linguistics", newDeadline(4, 1, 23, 59, "+00:00")),
			mk("uist", "UIST", "", newDeadline(4, 1, 23, 59, "+00:00")),
			{
				ID:      "tmlr",
				Acronym: "TMLR",
				Name:    "TMLR Journal",
				Area:    "Machine Learning",
				Website: "https://example.org/tmlr",
				Rolling: true,
			},
			{
				ID:      "hotos",
				Acronym: "HotOS",
				Name:    "HotOS Workshop",
				Area:    "Systems",
				Website: "https://example.org/hotos",
			},
		},
	}
}

func TestProjectorCombined(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p := NewProjector(testCatalog())

	rows := p.Combined(SortSpec{Key: SortDefault}, now)
	require.Len(t, rows, 7)

	// Default order: nearest instants first, unresolvable by acronym last.
	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Entry.Acronym
	}
	assert.Equal(t, []string{"ARR", "UIST", "NeurIPS", "OSDI", "ICML", "HotOS", "TMLR"}, got)

	// Unlisted and empty areas resolve to the Other bucket.
	for _, r := range rows {
		switch r.Entry.Acronym {
		case "ARR", "UIST":
			assert.Equal(t, config.AreaOtherLabel, r.Area)
		default:
			assert.Equal(t, r.Entry.Area, r.Area)
		}
	}
}

func TestProjectorSectioned(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cat := testCatalog()
	p := NewProjector(cat)

	groups := p.Sectioned(SortSpec{Key: SortDefault}, now)

	labels := make([]string, len(groups))
	total := 0
	seen := make(map[string]bool)
	for i, g := range groups {
		labels[i] = g.Label
		require.NotEmpty(t, g.Entries, "empty groups must be omitted")
		for _, e := range g.Entries {
			assert.False(t, seen[e.ID], "entry %s appears in more than one group", e.ID)
			seen[e.ID] = true
			total++
		}
	}

	// Theory has no members, so it is skipped; Other trails.
	assert.Equal(t, []string{"Machine Learning", "Systems", config.AreaOtherLabel}, labels)
	assert.Equal(t, len(cat.Entries), total, "sectioned view must cover the catalog exactly once")

	// Members order under the active spec within each group.
	assert.Equal(t, []string{"NeurIPS", "ICML", "TMLR"}, acronyms(groups[0].Entries))
	assert.Equal(t, []string{"OSDI", "HotOS"}, acronyms(groups[1].Entries))
	assert.Equal(t, []string{"ARR", "UIST"}, acronyms(groups[2].Entries))
}

func TestProjectorSectionedOtherLabelConfigured(t *testing.T) {
	// An area literally named like the fallback bucket must not duplicate it.
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cat := &catalog.Catalog{
		Areas: []string{config.AreaOtherLabel, "Systems"},
		Entries: []catalog.Entry{
			{
				ID: "a", Acronym: "AAA", Name: "AAA", Website: "https://example.org/a",
				Area: config.AreaOtherLabel, Rolling: true,
			},
			{
				ID: "b", Acronym: "BBB", Name: "BBB", Website: "https://example.org/b",
				Area: "Unlisted Field", Rolling: true,
			},
		},
	}

	groups := NewProjector(cat).Sectioned(SortSpec{Key: SortDefault}, now)
	require.Len(t, groups, 1)
	assert.Equal(t, config.AreaOtherLabel, groups[0].Label)
	assert.Equal(t, []string{"AAA", "BBB"}, acronyms(groups[0].Entries))
}

func TestProjectorUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p := NewProjector(testCatalog())

	got := p.Upcoming(now)
	require.Len(t, got, config.UpcomingCount)

	// ARR and UIST share the same instant; the acronym breaks the tie.
	assert.Equal(t, []string{"ARR", "UIST", "NeurIPS", "OSDI"}, acronyms(got))

	// Independent of the active sort spec by construction: rerun is identical.
	assert.Equal(t, acronyms(got), acronyms(p.Upcoming(now)))
}

func TestProjectorUpcomingFewerThanLimit(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cat := &catalog.Catalog{
		Entries: []catalog.Entry{
			{
				ID: "a", Acronym: "AAA", Name: "AAA", Website: "https://example.org/a",
				Deadline: newDeadline(6, 1, 0, 0, "+00:00"),
			},
			{
				ID: "r", Acronym: "RRR", Name: "RRR", Website: "https://example.org/r",
				Rolling: true,
			},
		},
	}

	got := NewProjector(cat).Upcoming(now)
	assert.Equal(t, []string{"AAA"}, acronyms(got))
}

func TestProjectorClosingSoon(t *testing.T) {
	now := time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC)
	p := NewProjector(testCatalog())

	// ARR and UIST (Apr 1) fall inside the 7-day window; nothing else does.
	assert.Equal(t, 2, p.ClosingSoon(now, config.ClosingSoonWindow))
	assert.Equal(t, 0, p.ClosingSoon(now, time.Hour))
}

func TestProjectorDeterminism(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p := NewProjector(testCatalog())
	spec := SortSpec{Key: SortDeadline, Desc: true}

	first := p.Combined(spec, now)
	for i := 0; i < 5; i++ {
		again := p.Combined(spec, now)
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].Entry.ID, again[j].Entry.ID)
		}
	}
}
