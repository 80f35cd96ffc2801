package constants

import "time"

// Collection names a per-user persisted blob.
type Collection string

const (
	AppName            = "daymood"
	DefaultKeyringUser = "database-connection"
	KeyringUserID      = "signed-in-user"
	DefaultConfigPath  = "~/.config/daymood/daymood.db"
	EnvFileName        = ".env"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Persisted collections, stored under "<collection>-<userId>"
	CollectionHabits       Collection = "habits"
	CollectionMood         Collection = "mood"
	CollectionAchievements Collection = "achievements"
	CollectionSettings     Collection = "settings"
	CollectionUndo         Collection = "undo"

	// Evening summary marker, stored under "eveningSummary-<userId>-<date>"
	EveningSummaryKeyPrefix = "eveningSummary"
	EveningSummaryMarker    = "shown"
	EveningSummaryHour      = 20
	EveningSummaryCheer     = 80
	EveningSummaryCronSpec  = "*/5 20-23 * * *"

	// Timers
	UndoGraceWindow     = 10 * time.Second
	DiaryDebounce       = 2 * time.Second
	ToastDuration       = 5 * time.Second
	CelebrationDuration = 3 * time.Second

	// Scheduler keys
	TaskDiary       = "diary"
	TaskUndo        = "undo"
	TaskToast       = "toast"
	TaskCelebration = "celebration"

	// Analytics
	WeekLength         = 7
	TopStreaksLimit    = 5
	RecentAchievements = 6

	ReportFilePrefix = "habit-report-"
	ReportFileSuffix = ".txt"
)
