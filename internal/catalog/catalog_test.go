package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeadline_Validate covers field ranges and offset parsing.
func TestDeadline_Validate(t *testing.T) {
	tests := []struct {
		name    string
		d       Deadline
		wantErr bool
	}{
		{"Valid AoE", Deadline{Month: 5, Day: 15, Hour: 23, Minute: 59, Offset: "-12:00"}, false},
		{"Valid UTC", Deadline{Month: 1, Day: 1, Hour: 0, Minute: 0, Offset: "+00:00"}, false},
		{"Valid Feb 29", Deadline{Month: 2, Day: 29, Hour: 12, Minute: 0, Offset: "+00:00"}, false},
		{"Month zero", Deadline{Month: 0, Day: 1, Hour: 0, Minute: 0, Offset: "+00:00"}, true},
		{"Month thirteen", Deadline{Month: 13, Day: 1, Hour: 0, Minute: 0, Offset: "+00:00"}, true},
		{"Day zero", Deadline{Month: 1, Day: 0, Hour: 0, Minute: 0, Offset: "+00:00"}, true},
		{"Feb 30", Deadline{Month: 2, Day: 30, Hour: 0, Minute: 0, Offset: "+00:00"}, true},
		{"April 31", Deadline{Month: 4, Day: 31, Hour: 0, Minute: 0, Offset: "+00:00"}, true},
		{"Hour 24", Deadline{Month: 1, Day: 1, Hour: 24, Minute: 0, Offset: "+00:00"}, true},
		{"Minute 60", Deadline{Month: 1, Day: 1, Hour: 0, Minute: 60, Offset: "+00:00"}, true},
		{"Offset no sign", Deadline{Month: 1, Day: 1, Hour: 0, Minute: 0, Offset: "12:00"}, true},
		{"Offset no colon", Deadline{Month: 1, Day: 1, Hour: 0, Minute: 0, Offset: "+1200"}, true},
		{"Offset garbage", Deadline{Month: 1, Day: 1, Hour: 0, Minute: 0, Offset: "+ab:cd"}, true},
		{"Offset hour range", Deadline{Month: 1, Day: 1, Hour: 0, Minute: 0, Offset: "+25:00"}, true},
		{"Offset empty", Deadline{Month: 1, Day: 1, Hour: 0, Minute: 0, Offset: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestDeadline_At verifies instant construction against fixed offsets.
func TestDeadline_At(t *testing.T) {
	d := Deadline{Month: 5, Day: 15, Hour: 23, Minute: 59, Offset: "-12:00"}
	require.NoError(t, d.Validate())

	got := d.At(2026)

	// 2026-05-15 23:59 AoE == 2026-05-16 11:59 UTC
	expected := time.Date(2026, 5, 16, 11, 59, 0, 0, time.UTC)
	assert.True(t, got.Equal(expected), "AoE instant should be 12 hours behind UTC, got %v", got)
}

// TestDeadline_At_LeapNormalization pins the Feb 29 policy: in a non-leap
// resolved year the instant rolls forward to Mar 1.
func TestDeadline_At_LeapNormalization(t *testing.T) {
	d := Deadline{Month: 2, Day: 29, Hour: 12, Minute: 0, Offset: "+00:00"}
	require.NoError(t, d.Validate())

	nonLeap := d.At(2027)
	assert.Equal(t, time.March, nonLeap.Month())
	assert.Equal(t, 1, nonLeap.Day())

	leap := d.At(2028)
	assert.Equal(t, time.February, leap.Month())
	assert.Equal(t, 29, leap.Day())
}

// TestDeadline_At_RequiresValidation pins the resolution order: Validate
// resolves the offset zone once, and At never mutates the deadline. An
// unvalidated deadline is a data fault and fails loudly.
func TestDeadline_At_RequiresValidation(t *testing.T) {
	d := Deadline{Month: 1, Day: 1, Hour: 0, Minute: 0, Offset: "+00:00"}

	assert.Panics(t, func() { d.At(2026) }, "At before Validate must fail loudly")

	require.NoError(t, d.Validate())
	assert.NotPanics(t, func() { d.At(2026) })
}

// TestEntry_Validate covers the rolling/deadline exclusivity invariant and
// required fields.
func TestEntry_Validate(t *testing.T) {
	valid := Deadline{Month: 1, Day: 1, Hour: 0, Minute: 0, Offset: "+00:00"}

	tests := []struct {
		name    string
		e       Entry
		wantErr bool
	}{
		{
			name:    "Dated entry",
			e:       Entry{ID: "a", Acronym: "A", Name: "Conf A", Website: "https://a.org", Deadline: &valid},
			wantErr: false,
		},
		{
			name:    "Rolling entry without deadline",
			e:       Entry{ID: "b", Acronym: "B", Name: "Journal B", Website: "https://b.org", Rolling: true},
			wantErr: false,
		},
		{
			name:    "TBA entry",
			e:       Entry{ID: "c", Acronym: "C", Name: "Conf C", Website: "https://c.org"},
			wantErr: false,
		},
		{
			name:    "Rolling entry with deadline",
			e:       Entry{ID: "d", Acronym: "D", Name: "Conf D", Website: "https://d.org", Rolling: true, Deadline: &valid},
			wantErr: true,
		},
		{
			name:    "Missing id",
			e:       Entry{Acronym: "E", Name: "Conf E", Website: "https://e.org"},
			wantErr: true,
		},
		{
			name:    "Missing acronym",
			e:       Entry{ID: "f", Name: "Conf F", Website: "https://f.org"},
			wantErr: true,
		},
		{
			name:    "Missing website",
			e:       Entry{ID: "g", Acronym: "G", Name: "Conf G"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.e.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestCatalog_Validate_DuplicateIDs ensures duplicate identifiers are a fatal
// authoring fault.
func TestCatalog_Validate_DuplicateIDs(t *testing.T) {
	c := Catalog{
		Entries: []Entry{
			{ID: "x", Acronym: "X", Name: "Conf X", Website: "https://x.org"},
			{ID: "x", Acronym: "X2", Name: "Conf X2", Website: "https://x2.org"},
		},
	}

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

// TestEntry_Dated checks the three deadline states.
func TestEntry_Dated(t *testing.T) {
	d := Deadline{Month: 1, Day: 1, Hour: 0, Minute: 0, Offset: "+00:00"}

	assert.True(t, (&Entry{Deadline: &d}).Dated(), "Entry with deadline is dated")
	assert.False(t, (&Entry{Rolling: true}).Dated(), "Rolling entry is never dated")
	assert.False(t, (&Entry{}).Dated(), "TBA entry is not dated")
}
