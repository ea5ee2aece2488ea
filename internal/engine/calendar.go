package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-deadlines/internal/catalog"
	"github.com/tartampluch/go-deadlines/internal/config"
)

// FeedOptions controls the generated deadline feed.
type FeedOptions struct {
	// ReminderTrigger is an ISO8601 duration string (e.g. "-P1D") attached as
	// a DISPLAY alarm to every event. Empty disables alarms.
	ReminderTrigger string

	// FormatSummary allows the UI to inject localized event titles.
	FormatSummary func(e *catalog.Entry) string
}

// BuildFeed renders the next occurrence of every dated entry as an iCalendar
// event so calendar clients can subscribe to the deadline feed. Rolling and
// TBA entries contribute nothing. An empty result still yields a minimal
// valid VCALENDAR.
func BuildFeed(entries []*catalog.Entry, now time.Time, opts FeedOptions) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// Set the calendar name manually to avoid "VALUE=TEXT" param.
	calNameProp := ical.NewProp(config.PropXWRCalName)
	calNameProp.Value = config.ICalCalName
	cal.Props.Set(calNameProp)

	// RFC 7986: suggest a refresh interval to subscribed clients.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	dated := 0
	for _, e := range entries {
		next, ok := NextDeadline(e, now)
		if !ok {
			continue
		}
		dated++

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, feedUID(e.ID, next.Year()))

		summary := feedSummary(e, opts)
		event.Props.SetText(config.PropSummary, summary)

		dtStartProp := ical.NewProp(config.PropDTStart)
		// The deadline carries an exact wall-clock instant, so events are
		// timed rather than all-day; stamp in UTC for client portability.
		dtStartProp.SetDateTime(next.UTC())
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		description := e.Name
		if e.Note != "" {
			description += "\n" + e.Note
		}
		event.Props.SetText(config.PropDescription, description)

		// Set the URL manually: SetText would tag the URI with "VALUE=TEXT".
		urlProp := ical.NewProp(config.PropURL)
		urlProp.Value = e.Website
		event.Props.Set(urlProp)
		if e.Location != "" {
			event.Props.SetText(config.PropLocation, e.Location)
		}

		if opts.ReminderTrigger != "" {
			addAlarm(event, opts.ReminderTrigger, summary)
		}

		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		// Keep subscribed clients from flagging an empty feed as invalid.
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFeedEncode, err)
	}

	slog.Info(config.MsgFeedBuilt,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, len(entries)),
			slog.Int(config.LogKeyDated, dated),
		),
	)
	return buf.Bytes(), nil
}

// feedUID derives a stable event identifier from the entry id and resolved
// year, so subscribed clients see the same UID across refreshes.
func feedUID(id string, year int) string {
	input := fmt.Sprintf(config.FormatHashInput, id, year, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	base := fmt.Sprintf("%x", hash[:config.UIDHashLength])
	return fmt.Sprintf(config.FormatUID, base, year, config.ICalDomain)
}

// feedSummary renders the event title, falling back to the non-localized
// format when no formatter is injected.
func feedSummary(e *catalog.Entry, opts FeedOptions) string {
	if opts.FormatSummary != nil {
		if s := opts.FormatSummary(e); s != "" {
			return s
		}
	}
	if e.Deadline != nil && e.Deadline.Estimated {
		return fmt.Sprintf(config.FallbackFeedSummaryEst, e.Acronym)
	}
	return fmt.Sprintf(config.FallbackFeedSummary, e.Acronym)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
