package constants

const (
	// DisplayDateFormat is used for week labels, e.g. "Jan 2"
	DisplayDateFormat = "Jan 2"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"
)
