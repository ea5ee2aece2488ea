package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-deadlines/internal/catalog"
	"github.com/tartampluch/go-deadlines/internal/config"
	"github.com/tartampluch/go-deadlines/internal/engine"
	"github.com/tartampluch/go-deadlines/internal/server"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// SyncConfig carries the catalog source selection and feed options resolved
// from preferences for one refresh cycle.
type SyncConfig struct {
	Mode            string
	LocalPath       string
	WebURL          string
	WebUser         string
	WebPass         string
	ReminderTrigger string
}

// GoDeadlinesApp encapsulates the UI state, preferences, and background logic.
type GoDeadlinesApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server  *server.FeedServer
	Fetcher catalog.Fetcher
	Clock   engine.Clock // Injected clock for testability (e.g. mocking time travel)

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// Catalog State
	CatalogMut      sync.RWMutex
	Catalog         *catalog.Catalog
	deadlinesWindow fyne.Window
}

// NewGoDeadlinesApp constructs the application and wires dependencies.
func NewGoDeadlinesApp(a fyne.App, ctx context.Context, srv *server.FeedServer, fetcher catalog.Fetcher) *GoDeadlinesApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &GoDeadlinesApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Clock:              engine.RealClock{}, // Default to real clock in production
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
	}
}

// Run launches the application services and the main UI loop.
func (app *GoDeadlinesApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *GoDeadlinesApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *GoDeadlinesApp) setupTrayMenu() {
	// The status item doubles as the entry point to the deadlines window.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowDeadlinesWindow()
	})
	app.TrayStatusItem.Disabled = false

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performSync(true)
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *GoDeadlinesApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker manages the periodic catalog refresh schedule.
func (app *GoDeadlinesApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performSync(false)

	getInterval := func() time.Duration {
		val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
		if val <= 0 {
			val = config.DefaultRefreshMin
		}
		return time.Duration(val) * time.Minute
	}

	currentDuration := getInterval()
	ticker := time.NewTicker(currentDuration)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := getInterval()
			if newDuration != currentDuration {
				log.Info(config.MsgUpdateSync, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				ticker.Reset(currentDuration)
			}

		case <-ticker.C:
			app.performSync(false)
		}
	}
}

// performSync executes the refresh pipeline (Acquire -> Validate -> Publish).
func (app *GoDeadlinesApp) performSync(manual bool) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	cfg := app.loadSyncConfig()

	cat, err := app.acquireCatalog(cfg)
	if err != nil {
		slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleSyncError, app.GetMsg(config.TKeyNotifError)))
		}
		app.updateTrayStatus(-1)
		return
	}

	now := app.Clock.Now()
	proj := engine.NewProjector(cat)

	feed, err := engine.BuildFeed(proj.Entries(), now, engine.FeedOptions{
		ReminderTrigger: cfg.ReminderTrigger,
		FormatSummary:   app.buildSummaryFormatter(),
	})
	if err != nil {
		slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleSyncError, app.GetMsg(config.TKeyNotifError)))
		}
		app.updateTrayStatus(-1)
		return
	}

	// Thread-safe publication of the new catalog
	app.CatalogMut.Lock()
	app.Catalog = cat
	app.CatalogMut.Unlock()

	app.Server.Update(feed)
	app.updateTrayStatus(proj.ClosingSoon(now, config.ClosingSoonWindow))

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSuccess)))
	}
}

// acquireCatalog loads and validates the catalog from the configured source.
func (app *GoDeadlinesApp) acquireCatalog(cfg SyncConfig) (*catalog.Catalog, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, fmt.Errorf(config.ErrLocalPathEmpty)
		}
		return catalog.LoadFile(cfg.LocalPath)

	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, fmt.Errorf(config.ErrWebURLEmpty)
		}
		if app.Fetcher == nil {
			return nil, fmt.Errorf(config.ErrFetcherMissing)
		}
		rc, err := app.Fetcher.Fetch(app.Ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return catalog.Load(rc)

	default:
		// Embedded catalog ships with the binary; always available.
		return catalog.LoadEmbedded()
	}
}

// updateTrayStatus updates the top menu item to show how many deadlines close
// within the lookahead window.
func (app *GoDeadlinesApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	var label string
	if count < 0 {
		label = config.FallbackTrayError
	} else if count == 0 {
		label = app.GetMsg(config.TKeyTrayStatusZero)
		if label == config.TKeyTrayStatusZero {
			label = fmt.Sprintf(config.FallbackTrayDefault, 0)
		}
	} else {
		// Standard pluralization for > 0
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyTrayStatus,
				TemplateData: map[string]interface{}{"Count": count},
				PluralCount:  count,
			})
			if err == nil {
				label = msg
			}
		}
		if label == "" {
			label = fmt.Sprintf(config.FallbackTrayDefault, count)
		}
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// loadSyncConfig assembles the sync configuration from UI preferences and Keyring.
func (app *GoDeadlinesApp) loadSyncConfig() SyncConfig {
	cfg := SyncConfig{
		Mode:      app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeEmbedded),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCatalogURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	if app.Preferences.Bool(config.PrefReminderEnabled) {
		val := app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue)
		unit := app.Preferences.StringWithFallback(config.PrefReminderUnit, config.UnitDays)
		dir := app.Preferences.StringWithFallback(config.PrefReminderDir, config.DirBefore)

		sign := config.ISOPeriodPrefix
		if dir == config.DirBefore {
			sign = config.ISONegativePrefix
		}

		switch unit {
		case config.UnitHours:
			cfg.ReminderTrigger = fmt.Sprintf("%s%d%s", sign, val, config.ISOHour)
		case config.UnitMinutes:
			cfg.ReminderTrigger = fmt.Sprintf("%s%d%s", sign, val, config.ISOMinute)
		default:
			cfg.ReminderTrigger = fmt.Sprintf("%s%d%s", sign, val, config.ISODay)
		}
	}

	return cfg
}

// buildSummaryFormatter returns a closure that localizes feed event titles.
// Returning an empty string makes the feed builder fall back to its fixed
// format.
func (app *GoDeadlinesApp) buildSummaryFormatter() func(e *catalog.Entry) string {
	return func(e *catalog.Entry) string {
		if app.Localizer == nil {
			return ""
		}

		key := config.TKeyFeedSummary
		if e.Deadline != nil && e.Deadline.Estimated {
			key = config.TKeyFeedSummaryEst
		}

		msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    key,
			TemplateData: map[string]interface{}{"Acronym": e.Acronym},
		})
		if err != nil {
			return ""
		}
		return msg
	}
}
