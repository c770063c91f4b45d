package constants

import "time"

const (
	AppName            = "gamttori"
	DisplayName        = "감또리"
	DefaultKeyringUser = "database-connection"
	KeyringTokenUser   = "auth-token"
	DefaultConfigPath  = "~/.config/gamttori/gamttori.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "gamttori-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "gamttori-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.gamttori.tray"
	TrayExecutablePrefix   = "gamttori-tray"

	// Remote API
	DefaultAPIBase = "https://gamttori-back0917.vercel.app/api"
	DefaultTimeout = 20 * time.Second

	// Progress
	DaysPerStone   = 3
	StoneCount     = 10
	MaxCounter     = 30
	MoodWindowDays = 7
	NeutralWeight  = 3
)
