package constants

import "time"

const (
	AppName            = "mana"
	DefaultKeyringUser = "session"
	DefaultConfigPath  = "~/.config/mana/mana.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used for user input (HH:MM)
	TimeFormat = "15:04"

	// Keyring entries
	KeyringAccessToken = "access_token"
	KeyringTokenType   = "token_type"
	KeyringUserID      = "user_id"
	KeyringDatabaseURL = "database_url"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "mana-notifier.lock"
	NotificationDurationMs = 8000
	TrayAppIdentifier      = "com.mana2.tray"
	TrayExecutable         = "mana-tray"
	NotifierSecretHeader   = "X-Mana-Secret"

	// Reminder loop
	DefaultWatchInterval = time.Minute
	DefaultDueWindow     = 2 * time.Minute
	MaxCatchUp           = 15 * time.Minute
	ReminderRetention    = 48 * time.Hour

	// Pagination
	DefaultUsersPerPage = 10
)
