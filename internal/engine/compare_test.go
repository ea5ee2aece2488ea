package engine

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-deadlines/internal/catalog"
)

func acronyms(entries []*catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Acronym
	}
	return out
}

func sortedBy(entries []*catalog.Entry, spec SortSpec, rank *Ranking, now time.Time) []*catalog.Entry {
	out := make([]*catalog.Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool {
		return Compare(out[i], out[j], spec, rank, now) < 0
	})
	return out
}

func TestCompareDefault(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rank := NewRanking([]string{"Systems"})

	entries := []*catalog.Entry{
		rollingEntry("tmlr", "TMLR"),
		datedEntry("b", "BBB", newDeadline(9, 1, 0, 0, "+00:00")),
		tbaEntry("hotos", "HotOS"),
		datedEntry("a", "AAA", newDeadline(5, 1, 0, 0, "+00:00")),
		datedEntry("c", "ZZZ", newDeadline(5, 1, 0, 0, "+00:00")),
	}

	got := sortedBy(entries, SortSpec{Key: SortDefault}, rank, now)
	assert.Equal(t, []string{"AAA", "ZZZ", "BBB", "HotOS", "TMLR"}, acronyms(got))

	// The default ordering ignores the direction flag.
	desc := sortedBy(entries, SortSpec{Key: SortDefault, Desc: true}, rank, now)
	assert.Equal(t, acronyms(got), acronyms(desc))
}

func TestCompareByArea(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rank := NewRanking([]string{"Machine Learning", "Systems"})

	ml := datedEntry("a", "ICML", newDeadline(1, 1, 0, 0, "+00:00"))
	ml.Area = "Machine Learning"
	sys := datedEntry("b", "OSDI", newDeadline(1, 1, 0, 0, "+00:00"))
	sys.Area = "Systems"
	sys2 := datedEntry("c", "ATC", newDeadline(1, 1, 0, 0, "+00:00"))
	sys2.Area = "Systems"
	other := datedEntry("d", "ARR", newDeadline(1, 1, 0, 0, "+00:00"))
	other.Area = "Computational Linguistics"

	entries := []*catalog.Entry{other, sys, ml, sys2}

	t.Run("ascending follows configured order", func(t *testing.T) {
		got := sortedBy(entries, SortSpec{Key: SortArea}, rank, now)
		assert.Equal(t, []string{"ICML", "ATC", "OSDI", "ARR"}, acronyms(got))
	})

	t.Run("unknown areas stay last when descending", func(t *testing.T) {
		got := sortedBy(entries, SortSpec{Key: SortArea, Desc: true}, rank, now)
		require.Equal(t, "ARR", got[len(got)-1].Acronym)
		assert.Equal(t, []string{"OSDI", "ATC", "ICML", "ARR"}, acronyms(got))
	})
}

func TestCompareByAcronym(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rank := NewRanking(nil)

	entries := []*catalog.Entry{
		tbaEntry("1", "osdi"),
		tbaEntry("2", "ICML"),
		tbaEntry("3", "CHI"),
	}

	asc := sortedBy(entries, SortSpec{Key: SortAcronym}, rank, now)
	assert.Equal(t, []string{"CHI", "ICML", "osdi"}, acronyms(asc))

	desc := sortedBy(entries, SortSpec{Key: SortAcronym, Desc: true}, rank, now)
	assert.Equal(t, []string{"osdi", "ICML", "CHI"}, acronyms(desc))
}

func TestCompareByResolved(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rank := NewRanking(nil)

	entries := []*catalog.Entry{
		rollingEntry("r", "TMLR"),
		datedEntry("late", "LATE", newDeadline(11, 1, 0, 0, "+00:00")),
		datedEntry("soon", "SOON", newDeadline(4, 1, 0, 0, "+00:00")),
		tbaEntry("t", "HotOS"),
	}

	for _, key := range []SortKey{SortDeadline, SortCountdown} {
		t.Run(key.String(), func(t *testing.T) {
			asc := sortedBy(entries, SortSpec{Key: key}, rank, now)
			assert.Equal(t, []string{"SOON", "LATE", "HotOS", "TMLR"}, acronyms(asc))

			// Direction flips dated entries only; unresolvable stay pinned last.
			desc := sortedBy(entries, SortSpec{Key: key, Desc: true}, rank, now)
			assert.Equal(t, []string{"LATE", "SOON", "TMLR", "HotOS"}, acronyms(desc))
		})
	}
}

func TestCompareByLocation(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rank := NewRanking(nil)

	a := tbaEntry("1", "AAA")
	a.Location = "Vienna, Austria"
	b := tbaEntry("2", "BBB")
	b.Location = "athens, Greece"
	c := tbaEntry("3", "CCC")

	asc := sortedBy([]*catalog.Entry{a, b, c}, SortSpec{Key: SortLocation}, rank, now)
	assert.Equal(t, []string{"CCC", "BBB", "AAA"}, acronyms(asc))
}

func TestCompareTotality(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rank := NewRanking([]string{"Systems"})

	entries := []*catalog.Entry{
		datedEntry("a", "AAA", newDeadline(5, 1, 0, 0, "+00:00")),
		rollingEntry("b", "BBB"),
		tbaEntry("c", "CCC"),
	}

	specs := []SortSpec{
		{Key: SortDefault},
		{Key: SortArea}, {Key: SortArea, Desc: true},
		{Key: SortAcronym}, {Key: SortAcronym, Desc: true},
		{Key: SortDeadline}, {Key: SortDeadline, Desc: true},
		{Key: SortCountdown, Desc: true},
		{Key: SortLocation},
	}

	for _, spec := range specs {
		for _, x := range entries {
			for _, y := range entries {
				cxy := Compare(x, y, spec, rank, now)
				cyx := Compare(y, x, spec, rank, now)
				assert.Equal(t, cxy, -cyx, "antisymmetry for %v: %s vs %s", spec, x.Acronym, y.Acronym)
				if x == y {
					assert.Zero(t, cxy)
				} else {
					assert.NotZero(t, cxy, "distinct entries must never compare equal")
				}
			}
		}
	}
}

func TestRanking(t *testing.T) {
	rank := NewRanking([]string{"ML", "Systems", "ML"})

	assert.True(t, rank.Known("ML"))
	assert.True(t, rank.Known("Systems"))
	assert.False(t, rank.Known("Theory"))
	assert.False(t, rank.Known(""))

	assert.Equal(t, 0, rank.Priority("ML"))
	assert.Equal(t, 1, rank.Priority("Systems"))
	assert.Equal(t, 2, rank.Priority("Theory"))
	assert.Equal(t, rank.Priority("Theory"), rank.Priority("HCI"))
}
