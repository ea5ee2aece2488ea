package ui

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-deadlines/internal/catalog"
	"github.com/tartampluch/go-deadlines/internal/config"
	"github.com/tartampluch/go-deadlines/internal/engine"
)

// rowKind discriminates table rows between entries and section headers.
type rowKind int

const (
	rowEntry rowKind = iota
	rowHeader
)

// tableRow is one display row of the deadlines table. Header rows carry only
// a label; entry rows carry the entry and its resolved area.
type tableRow struct {
	kind  rowKind
	label string
	entry *catalog.Entry
	area  string
}

// buildRows flattens the active projection into display rows. The sectioned
// view interleaves group header rows; the combined view is entries only.
func buildRows(proj *engine.Projector, sectioned bool, spec engine.SortSpec, now time.Time) []tableRow {
	if !sectioned {
		combined := proj.Combined(spec, now)
		rows := make([]tableRow, len(combined))
		for i, r := range combined {
			rows[i] = tableRow{kind: rowEntry, entry: r.Entry, area: r.Area}
		}
		return rows
	}

	var rows []tableRow
	for _, g := range proj.Sectioned(spec, now) {
		rows = append(rows, tableRow{kind: rowHeader, label: g.Label})
		for _, e := range g.Entries {
			rows = append(rows, tableRow{kind: rowEntry, entry: e, area: g.Label})
		}
	}
	return rows
}

// columnSortKey maps a table column to its sort key. The name column is not
// sortable: acronym ordering already covers the alphabetic case.
func columnSortKey(col int) (engine.SortKey, bool) {
	switch col {
	case config.ColIDAcronym:
		return engine.SortAcronym, true
	case config.ColIDArea:
		return engine.SortArea, true
	case config.ColIDDeadline:
		return engine.SortDeadline, true
	case config.ColIDCountdown:
		return engine.SortCountdown, true
	case config.ColIDLocation:
		return engine.SortLocation, true
	default:
		return engine.SortDefault, false
	}
}

// nextSortSpec advances the header click cycle: ascending, then descending,
// then back to the default composite order.
func nextSortSpec(cur engine.SortSpec, key engine.SortKey) engine.SortSpec {
	if cur.Key != key {
		return engine.SortSpec{Key: key}
	}
	if !cur.Desc {
		return engine.SortSpec{Key: key, Desc: true}
	}
	return engine.SortSpec{}
}

// SubmitLink returns the URL opened when a deadline or countdown cell is
// activated: the submission portal when the venue lists one, otherwise the
// website.
func SubmitLink(e *catalog.Entry) string {
	if e.SubmitURL != "" {
		return e.SubmitURL
	}
	return e.Website
}

// LocationLink returns the URL opened when a location cell is activated: the
// explicit override when present, otherwise a map search over the raw text.
// Entries without a location yield an empty link.
func LocationLink(e *catalog.Entry) string {
	if e.LocationURL != "" {
		return e.LocationURL
	}
	if e.Location == "" {
		return ""
	}
	return config.MapSearchURL + url.QueryEscape(e.Location)
}

// ShowDeadlinesWindow displays the catalog with live countdowns, sortable
// columns and a combined/sectioned view toggle. It implements a singleton
// pattern: if the window is already open, it requests focus.
func (app *GoDeadlinesApp) ShowDeadlinesWindow() {
	if app.deadlinesWindow != nil {
		app.deadlinesWindow.RequestFocus()
		return
	}

	title := app.GetMsg(config.TKeyWinDeadlines)
	app.deadlinesWindow = app.App.NewWindow(title)
	app.deadlinesWindow.Resize(fyne.NewSize(config.DeadlinesWinWidth, config.DeadlinesWinHeight))

	// Snapshot the published catalog; the window works on this immutable copy
	// until reopened.
	app.CatalogMut.RLock()
	cat := app.Catalog
	app.CatalogMut.RUnlock()
	if cat == nil {
		cat = &catalog.Catalog{}
	}
	proj := engine.NewProjector(cat)

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(cat.Entries))

	// Internal display state
	spec := engine.SortSpec{}
	sectioned := false
	now := app.Clock.Now()
	rows := buildRows(proj, sectioned, spec, now)

	upcomingLabel := widget.NewLabel(app.upcomingText(proj, now))
	upcomingLabel.TextStyle = fyne.TextStyle{Bold: true}

	var refreshTable func()

	table := widget.NewTable(
		func() (int, int) {
			return len(rows), config.TableColumns
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(rows) {
				return
			}
			row := rows[id.Row]

			if row.kind == rowHeader {
				label.TextStyle = fyne.TextStyle{Bold: true}
				if id.Col == config.ColIDAcronym {
					label.SetText(row.label)
				} else {
					label.SetText("")
				}
				return
			}

			label.TextStyle = fyne.TextStyle{}
			e := row.entry
			switch id.Col {
			case config.ColIDAcronym:
				label.SetText(e.Acronym)
			case config.ColIDName:
				label.SetText(e.Name)
			case config.ColIDArea:
				label.SetText(row.area)
			case config.ColIDDeadline:
				label.SetText(app.deadlineCellText(e, now))
			case config.ColIDCountdown:
				label.SetText(engine.StatusText(e, now))
			case config.ColIDLocation:
				if e.Location == "" {
					label.SetText(config.EmptyCell)
				} else {
					label.SetText(e.Location)
				}
			}
		},
	)

	table.ShowHeaderRow = true

	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}

	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDAcronym:
			titleKey = config.TKeyColAcronym
		case config.ColIDName:
			titleKey = config.TKeyColName
		case config.ColIDArea:
			titleKey = config.TKeyColArea
		case config.ColIDDeadline:
			titleKey = config.TKeyColDeadline
		case config.ColIDCountdown:
			titleKey = config.TKeyColCountdown
		case config.ColIDLocation:
			titleKey = config.TKeyColLocation
		}

		text := app.GetMsg(titleKey)

		key, sortable := columnSortKey(id.Col)
		if sortable && spec.Key == key {
			if spec.Desc {
				text += config.SortIconDesc
			} else {
				text += config.SortIconAsc
			}
		}

		btn.SetText(text)

		if !sortable {
			btn.OnTapped = nil
			return
		}
		btn.OnTapped = func() {
			spec = nextSortSpec(spec, key)
			slog.Debug(config.LogMsgSorted,
				config.LogKeyComponent, config.CompUI,
				config.LogKeySortKey, spec.Key.String(),
				config.LogKeySortDesc, spec.Desc)
			refreshTable()
		}
	}

	table.SetColumnWidth(config.ColIDAcronym, config.ColWidthAcronym)
	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDArea, config.ColWidthArea)
	table.SetColumnWidth(config.ColIDDeadline, config.ColWidthDeadline)
	table.SetColumnWidth(config.ColIDCountdown, config.ColWidthCountdown)
	table.SetColumnWidth(config.ColIDLocation, config.ColWidthLocation)

	// Row activation opens the entry's website; the deadline and countdown
	// cells open the submission portal, the location cell its map link.
	table.OnSelected = func(id widget.TableCellID) {
		defer table.UnselectAll()
		if id.Row < 0 || id.Row >= len(rows) {
			return
		}
		row := rows[id.Row]
		if row.kind != rowEntry {
			return
		}

		var target string
		switch id.Col {
		case config.ColIDLocation:
			target = LocationLink(row.entry)
		case config.ColIDDeadline, config.ColIDCountdown:
			target = SubmitLink(row.entry)
		default:
			target = row.entry.Website
		}
		if target != "" {
			app.openLink(target)
		}
	}

	refreshTable = func() {
		now = app.Clock.Now()
		rows = buildRows(proj, sectioned, spec, now)
		upcomingLabel.SetText(app.upcomingText(proj, now))
		table.Refresh()
	}

	// View toggle (combined table vs. per-area sections)
	combinedOpt := app.GetMsg(config.TKeyViewCombined)
	sectionedOpt := app.GetMsg(config.TKeyViewSectioned)
	viewSelect := widget.NewSelect([]string{combinedOpt, sectionedOpt}, func(selected string) {
		wantSectioned := selected == sectionedOpt
		if wantSectioned == sectioned {
			return
		}
		sectioned = wantSectioned

		// Grouping already orders by area, so an active area sort would be
		// redundant inside sections.
		if sectioned && spec.Key == engine.SortArea {
			spec = engine.SortSpec{}
			slog.Debug(config.MsgSortReset, config.LogKeyComponent, config.CompUI)
		}

		slog.Debug(config.MsgViewSwitched,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyView, selected)
		refreshTable()
	})
	viewSelect.SetSelected(combinedOpt)

	topBar := container.NewBorder(nil, nil, nil, viewSelect, upcomingLabel)
	content := container.NewBorder(topBar, nil, nil, nil, table)
	app.deadlinesWindow.SetContent(content)

	stopTicker := app.startCountdownTicker(refreshTable)

	app.deadlinesWindow.SetOnClosed(func() {
		stopTicker()
		app.deadlinesWindow = nil
	})

	app.deadlinesWindow.Show()
}

// deadlineCellText renders the deadline column for any entry state.
func (app *GoDeadlinesApp) deadlineCellText(e *catalog.Entry, now time.Time) string {
	if e.Rolling {
		return config.EmptyCell
	}
	if e.Deadline == nil {
		return config.StatusTBA
	}

	format := app.GetMsg(config.TKeyFormatDate)
	if format == config.TKeyFormatDate {
		format = config.DateFormatDisplay
	}

	text := engine.NextOccurrence(e.Deadline, now).Format(format)
	if e.Deadline.Label != "" {
		text += " (" + e.Deadline.Label + ")"
	}
	if e.Deadline.Estimated {
		text += " (" + config.FallbackEstimated + ")"
	}
	return text
}

// upcomingText renders the "next deadlines" strip above the table.
func (app *GoDeadlinesApp) upcomingText(proj *engine.Projector, now time.Time) string {
	ups := proj.Upcoming(now)
	if len(ups) == 0 {
		return ""
	}

	parts := make([]string, len(ups))
	for i, e := range ups {
		next := engine.NextOccurrence(e.Deadline, now)
		parts[i] = fmt.Sprintf("%s (%s)", e.Acronym, engine.FormatCountdown(next, now))
	}
	return app.GetMsg(config.TKeyLblUpcoming) + " " + strings.Join(parts, "  ·  ")
}

// startCountdownTicker advances the window's clock once per second on the UI
// thread. The returned stop function is idempotent.
func (app *GoDeadlinesApp) startCountdownTicker(onTick func()) func() {
	ticker := time.NewTicker(config.CountdownTick)
	done := make(chan struct{})
	var once sync.Once

	stop := func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
			slog.Debug(config.MsgTickerStop, config.LogKeyComponent, config.CompUI)
		})
	}

	go func() {
		for {
			select {
			case <-done:
				return
			case <-app.Ctx.Done():
				return
			case <-ticker.C:
				fyne.Do(onTick)
			}
		}
	}()

	return stop
}

// openLink hands a URL to the desktop environment.
func (app *GoDeadlinesApp) openLink(raw string) {
	u, err := url.Parse(raw)
	if err != nil {
		slog.Error(config.ErrOpenLink,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyURL, raw,
			config.LogKeyError, err)
		return
	}

	slog.Info(config.MsgOpeningLink,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyURL, raw)

	if err := app.App.OpenURL(u); err != nil {
		slog.Error(config.ErrOpenLink,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyURL, raw,
			config.LogKeyError, err)
	}
}
