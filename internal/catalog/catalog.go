package catalog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tartampluch/go-deadlines/internal/config"
)

// Deadline describes an annually recurring submission cutoff. No year is
// stored; the year is resolved against a pivot instant at query time.
type Deadline struct {
	Month  int    `yaml:"month"`
	Day    int    `yaml:"day"`
	Hour   int    `yaml:"hour"`
	Minute int    `yaml:"minute"`
	Offset string `yaml:"offset"` // fixed UTC offset, "+HH:MM" or "-HH:MM"

	// Label is the human wording of the nominal date (e.g. "May 15").
	Label string `yaml:"label"`

	// Estimated marks dates inferred from previous editions rather than
	// officially announced.
	Estimated bool `yaml:"estimated"`

	// zone is the parsed fixed-offset location, resolved by Validate.
	zone *time.Location
}

// Entry is a single venue in the catalog. It is immutable at runtime; the
// only mutation path is replacing the whole catalog on refresh.
type Entry struct {
	ID      string `yaml:"id"`
	Acronym string `yaml:"acronym"`
	Name    string `yaml:"name"`

	// Area is the sort/grouping tag. Absence means "unclassified".
	Area string `yaml:"area,omitempty"`

	// Deadline is nil for rolling or not-yet-announced venues.
	Deadline *Deadline `yaml:"deadline,omitempty"`

	// Rolling venues have no fixed annual cutoff and are always open.
	Rolling bool `yaml:"rolling,omitempty"`

	Location string `yaml:"location,omitempty"`

	// LocationURL overrides the map-search link built from Location.
	LocationURL string `yaml:"location_url,omitempty"`

	Note      string `yaml:"note,omitempty"`
	Website   string `yaml:"website"`
	SubmitURL string `yaml:"submit_url,omitempty"`
}

// Catalog is the full static dataset: the ordered area sequence that defines
// group display priority, plus the venue entries in authored order.
type Catalog struct {
	Areas   []string `yaml:"areas"`
	Entries []Entry  `yaml:"entries"`
}

// At constructs the absolute instant of the deadline in the given year.
// Go's time.Date normalizes out-of-range days, so a Feb 29 deadline resolves
// to Mar 1 in non-leap years. The offset zone is resolved once by Validate;
// At never writes to the deadline, so sharing validated entries across
// goroutines is safe. Calling At before Validate is a data-integrity fault
// and panics.
func (d *Deadline) At(year int) time.Time {
	if d.zone == nil {
		panic(fmt.Sprintf("%s: %q", config.ErrZoneUnresolved, d.Offset))
	}
	return time.Date(year, time.Month(d.Month), d.Day, d.Hour, d.Minute, 0, 0, d.zone)
}

// Validate checks field ranges and resolves the offset into a fixed zone.
func (d *Deadline) Validate() error {
	if d.Month < config.MinMonth || d.Month > config.MaxMonth {
		return fmt.Errorf("%s: %d", config.ErrMonthRange, d.Month)
	}
	if d.Day < config.MinDay || d.Day > daysIn(time.Month(d.Month)) {
		return fmt.Errorf("%s: %d", config.ErrDayRange, d.Day)
	}
	if d.Hour < config.MinHour || d.Hour > config.MaxHour {
		return fmt.Errorf("%s: %d", config.ErrHourRange, d.Hour)
	}
	if d.Minute < config.MinMinute || d.Minute > config.MaxMinute {
		return fmt.Errorf("%s: %d", config.ErrMinuteRange, d.Minute)
	}
	zone, err := parseOffset(d.Offset)
	if err != nil {
		return err
	}
	d.zone = zone
	return nil
}

// Dated reports whether the entry carries a usable recurring deadline.
// Rolling venues and TBA venues are not dated.
func (e *Entry) Dated() bool {
	return !e.Rolling && e.Deadline != nil
}

// Validate checks a single entry for authoring faults.
func (e *Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%s (%q)", config.ErrMissingID, e.Acronym)
	}
	if e.Acronym == "" {
		return fmt.Errorf("%s: %q", config.ErrMissingAcronym, e.ID)
	}
	if e.Name == "" {
		return fmt.Errorf("%s: %q", config.ErrMissingName, e.ID)
	}
	if e.Website == "" {
		return fmt.Errorf("%s: %q", config.ErrMissingWebsite, e.ID)
	}
	if e.Rolling && e.Deadline != nil {
		return fmt.Errorf("%s: %q", config.ErrRollingDeadline, e.ID)
	}
	if e.Deadline != nil {
		if err := e.Deadline.Validate(); err != nil {
			return fmt.Errorf("%q: %w", e.ID, err)
		}
	}
	return nil
}

// Validate checks the whole catalog. It fails loudly on the first fault:
// the data is vetted at authoring time, so any error here is fatal.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Entries))
	for i := range c.Entries {
		e := &c.Entries[i]
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%s: %w", config.ErrCatalogInvalid, err)
		}
		if seen[e.ID] {
			return fmt.Errorf("%s: %s: %q", config.ErrCatalogInvalid, config.ErrDuplicateID, e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}

// parseOffset turns "+HH:MM" / "-HH:MM" into a fixed time.Location.
func parseOffset(s string) (*time.Location, error) {
	if len(s) != config.OffsetLength || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return nil, fmt.Errorf("%s: %q", config.ErrOffsetFormat, s)
	}
	hours, err := strconv.Atoi(s[1:3])
	if err != nil {
		return nil, fmt.Errorf("%s: %q", config.ErrOffsetFormat, s)
	}
	minutes, err := strconv.Atoi(s[4:6])
	if err != nil {
		return nil, fmt.Errorf("%s: %q", config.ErrOffsetFormat, s)
	}
	if hours > 23 || minutes > 59 {
		return nil, fmt.Errorf("%s: %q", config.ErrOffsetFormat, s)
	}
	seconds := hours*config.SecondsPerHour + minutes*config.SecondsPerMinute
	if s[0] == '-' {
		seconds = -seconds
	}
	return time.FixedZone("UTC"+s, seconds), nil
}

// daysIn returns the maximum authorable day for a month. February allows 29;
// the leap-year question is settled at resolution time, not authoring time.
func daysIn(m time.Month) int {
	switch m {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		return 29
	default:
		return 31
	}
}
