package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Deadlines/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Deadlines"
	AppID             = "com.github.tartampluch.go-deadlines"
	KeyringService    = "com.github.tartampluch.go-deadlines"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600

	// Preference Keys
	PrefCatalogURL      = "catalog_url"
	PrefUsername        = "username"
	PrefLanguage        = "language"
	PrefInterval        = "refresh_interval_min"
	PrefServerPort      = "server_port"
	PrefSourceMode      = "source_mode"
	PrefLocalPath       = "local_path"
	PrefReminderEnabled = "reminder_enabled"
	PrefReminderValue   = "reminder_value"
	PrefReminderUnit    = "reminder_unit"
	PrefReminderDir     = "reminder_direction"
	PrefLastRun         = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Deadlines Window Constants
// -----------------------------------------------------------------------------

const (
	// Window Dimensions
	DeadlinesWinWidth  = 980
	DeadlinesWinHeight = 520

	// Table Column IDs
	ColIDAcronym   = 0
	ColIDName      = 1
	ColIDArea      = 2
	ColIDDeadline  = 3
	ColIDCountdown = 4
	ColIDLocation  = 5

	// TableColumns is the column count of the combined table.
	TableColumns = 6

	// Table Layout
	ColWidthAcronym   = 110
	ColWidthName      = 320
	ColWidthArea      = 140
	ColWidthDeadline  = 130
	ColWidthCountdown = 140
	ColWidthLocation  = 180

	// Display Placeholders
	TablePlaceholder = "Cell Content"
	LogMsgOpenWin    = "Opening Deadlines Window"
	LogMsgSorted     = "Deadlines sorted"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"

	// DateFormatDisplay is the fallback layout of the deadline column when no
	// localized format is available.
	DateFormatDisplay = "Jan 2, 2006 15:04 MST"

	// EmptyCell renders for absent optional fields (location, deadline).
	EmptyCell = "—"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinDeadlines   = "win_deadlines_title"
	TKeyMenuRefresh    = "menu_refresh"
	TKeyMenuSettings   = "menu_settings"
	TKeyTrayStatus     = "tray_status"      // Requires Count > 0
	TKeyTrayStatusZero = "tray_status_zero" // Explicit key for 0
	TKeyNotifStart     = "notif_sync_start"
	TKeyNotifSuccess   = "notif_sync_success"
	TKeyNotifError     = "notif_err_sync"
	TKeyModeEmbedded   = "mode_embedded"
	TKeyModeWeb        = "mode_web"
	TKeyModeLocal      = "mode_local"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblMinutes     = "lbl_minutes_suffix"
	TKeyLblRefresh     = "lbl_refresh_interval"
	TKeyHelpInterval   = "help_interval"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblEnableRem   = "lbl_enable_reminders"
	TKeyUnitDays       = "unit_days"
	TKeyUnitHours      = "unit_hours"
	TKeyUnitMinutes    = "unit_minutes"
	TKeyDirBefore      = "dir_before"
	TKeyDirAfter       = "dir_after"
	TKeyLblNotif       = "lbl_notifications"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyLblFooter      = "lbl_footer"
	TKeyBtnBrowse      = "btn_browse"
	TKeyLblURL         = "lbl_url"
	TKeyHelpURL        = "help_catalog_url"
	TKeyLblUser        = "lbl_user"
	TKeyLblPass        = "lbl_pass"
	TKeyLblSource      = "lbl_source"
	TKeyFeedSummary    = "feed_summary"     // Requires Acronym
	TKeyFeedSummaryEst = "feed_summary_est" // Requires Acronym (estimated dates)

	// Column Headers & View Labels
	TKeyColAcronym    = "col_acronym"
	TKeyColName       = "col_name"
	TKeyColArea       = "col_area"
	TKeyColDeadline   = "col_deadline"
	TKeyColCountdown  = "col_countdown"
	TKeyColLocation   = "col_location"
	TKeyViewCombined  = "view_combined"
	TKeyViewSectioned = "view_sectioned"
	TKeyLblUpcoming   = "lbl_upcoming"
	TKeyFormatDate    = "format_date"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeEmbedded   = "embedded"
	SourceModeWeb        = "web"
	SourceModeLocal      = "local"
	DefaultPort          = "18088"
	DefaultRefreshMin    = 60
	DefaultLanguage      = "en"
	DefaultReminderValue = 1
	UIDSalt              = "go-deadlines-v1-" // Salt for deterministic UID generation
	DisabledInterval     = 0

	// CountdownTick is the cadence at which "now" advances in the UI.
	CountdownTick = 1 * time.Second

	// UpcomingCount is the number of entries in the "next deadlines" strip.
	UpcomingCount = 4

	// ClosingSoonWindow is the lookahead used for the tray status counter.
	ClosingSoonWindow = 7 * 24 * time.Hour
)

// ISO8601 Duration Components for Reminders
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISODay            = "D"
	ISOHour           = "H"
	ISOMinute         = "M"
)

// -----------------------------------------------------------------------------
// Status & Countdown Tokens
// -----------------------------------------------------------------------------

// Fixed tokens of the rendered rows. Not localized: tests and subscribed
// tooling rely on the literal strings.
const (
	CountdownClosed = "Closed"
	StatusRolling   = "Always open"
	StatusTBA       = "TBA"

	FormatCountdownDays    = "%dd %dh %dm"
	FormatCountdownHours   = "%dh %dm %ds"
	FormatCountdownMinutes = "%dm %ds"

	SecondsPerMinute = 60
	SecondsPerHour   = 60 * 60
	SecondsPerDay    = 24 * 60 * 60
)

// AreaOtherLabel is the fixed bucket for entries whose area is absent or not
// part of the configured area order.
const AreaOtherLabel = "Other"

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Deadlines//Engine//EN"
	ICalCalName   = "Submission Deadlines"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "godeadlines"

	// iCal Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropURL         = "URL"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropLocation    = "LOCATION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Catalog recurrence field bounds.
	MinMonth  = 1
	MaxMonth  = 12
	MinDay    = 1
	MinHour   = 0
	MaxHour   = 23
	MinMinute = 0
	MaxMinute = 59

	// OffsetLength is the length of a fixed UTC offset string ("+HH:MM").
	OffsetLength = 6
	OffsetUTC    = "+00:00"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%d|%s"
	FormatUID       = "%s-%d@%s"

	// File Extensions
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB; catalogs are small text files
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"

	// MapSearchURL is the fallback location link base; the raw location text
	// is query-escaped and appended.
	MapSearchURL = "https://www.openstreetmap.org/search?query="
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrCatalogDecode    = "failed to decode catalog document"
	ErrCatalogInvalid   = "catalog failed validation"
	ErrFeedEncode       = "failed to encode deadline feed"
	ErrDuplicateID      = "duplicate entry id"
	ErrMissingID        = "entry is missing an id"
	ErrMissingAcronym   = "entry is missing an acronym"
	ErrMissingName      = "entry is missing a name"
	ErrMissingWebsite   = "entry is missing a website"
	ErrRollingDeadline  = "rolling entry must not carry a deadline"
	ErrMonthRange       = "deadline month out of range"
	ErrDayRange         = "deadline day out of range for month"
	ErrHourRange        = "deadline hour out of range"
	ErrMinuteRange      = "deadline minute out of range"
	ErrOffsetFormat     = "deadline offset must look like +HH:MM or -HH:MM"
	ErrZoneUnresolved   = "deadline used before validation resolved its offset"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrLocNotInit       = "localizer not initialized"
	ErrOpenLink         = "failed to open external link"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Deadline feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackFeedSummary    = "%s submission deadline"
	FallbackFeedSummaryEst = "%s submission deadline (estimated)"
	FallbackTrayError      = "Go Deadlines: Sync Error"
	FallbackTrayDefault    = "Go Deadlines (%d closing soon)"
	FallbackTrayLabel      = "Go Deadlines"
	FallbackEstimated      = "est."

	// StubVCalendar is the minimal valid iCalendar object used when no dated
	// entries exist. Keeps subscribed clients from flagging the feed as invalid.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleSyncError    = "Sync Error"

	MsgPortBusy      = "Port %s is busy or unavailable."
	MsgSyncStarted   = "Catalog refresh started..."
	MsgSyncFailed    = "Catalog refresh failed. Check logs."
	MsgSyncReq       = "Refresh requested"
	MsgWorkerStart   = "Background worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgUpdateSync    = "Updating refresh interval"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgCatalogLoaded = "Catalog loaded"
	MsgFeedBuilt     = "Deadline feed generated"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Feed cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgOpeningLink   = "Opening external link"
	MsgViewSwitched  = "View mode switched"
	MsgSortReset     = "Sort spec reset to default"
	MsgTickerStop    = "Countdown ticker stopped"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Reminder Units & Directions
// -----------------------------------------------------------------------------

const (
	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
	DirBefore   = "before"
	DirAfter    = "after"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_entries"
	LogKeyDated     = "dated_entries"
	LogKeyClosing   = "closing_soon"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortKey   = "sort_key"
	LogKeySortDesc  = "sort_desc"
	LogKeyView      = "view"
	LogKeyCount     = "count"
	LogKeyAcronym   = "acronym"
	LogKeyID        = "id"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompCatalog = "catalog"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompWorker  = "worker"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
