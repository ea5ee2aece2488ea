package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-deadlines/internal/catalog"
	"github.com/tartampluch/go-deadlines/internal/config"
)

// FormatCountdown renders the remaining time until target as a coarse-to-fine
// human string. A target at or before now renders the terminal "Closed" token.
//
// The granularity drops the finest unit once a day remains: "2d 3h 4m",
// "3h 4m 5s", "4m 5s". No zero padding, no localization.
func FormatCountdown(target, now time.Time) string {
	if !target.After(now) {
		return config.CountdownClosed
	}

	secs := int64(target.Sub(now) / time.Second)

	days := secs / config.SecondsPerDay
	secs -= days * config.SecondsPerDay
	hours := secs / config.SecondsPerHour
	secs -= hours * config.SecondsPerHour
	minutes := secs / config.SecondsPerMinute
	secs -= minutes * config.SecondsPerMinute

	switch {
	case days > 0:
		return fmt.Sprintf(config.FormatCountdownDays, days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf(config.FormatCountdownHours, hours, minutes, secs)
	default:
		return fmt.Sprintf(config.FormatCountdownMinutes, minutes, secs)
	}
}

// StatusText renders the countdown cell for any entry state: rolling venues
// are always open, entries without a descriptor are TBA, dated entries show
// the live countdown (or "Closed" once the instant passes, which only happens
// transiently before the next tick resolves the following year).
func StatusText(e *catalog.Entry, now time.Time) string {
	if e.Rolling {
		return config.StatusRolling
	}
	if e.Deadline == nil {
		return config.StatusTBA
	}
	return FormatCountdown(NextOccurrence(e.Deadline, now), now)
}
