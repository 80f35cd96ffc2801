package constants

const (
	// Settings keys as they appear in the persisted settings blob
	SettingTheme          = "theme"
	SettingAccentColor    = "accentColor"
	SettingEveningSummary = "eveningSummary"

	// Default Settings Values
	DefaultTheme          = "light"
	DefaultAccentColor    = "Purple"
	DefaultEveningSummary = true
	DefaultTimezone       = "Local" // Use system local timezone by default
)
