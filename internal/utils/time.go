package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/daymood/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// DateOf formats t as a calendar date in t's own location.
func DateOf(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a YYYY-MM-DD date as a civil date (midnight UTC).
func ParseDate(date string) (time.Time, error) {
	return time.Parse(constants.DateFormat, date)
}

// ValidateDate reports whether date is a well-formed YYYY-MM-DD date.
func ValidateDate(date string) bool {
	_, err := ParseDate(date)
	return err == nil
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
// Arithmetic happens in UTC so DST transitions never skip or repeat a day.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// MustAddDays is AddDays for dates already known to be valid.
func MustAddDays(date string, n int) string {
	out, err := AddDays(date, n)
	if err != nil {
		panic(err)
	}
	return out
}

// FormatDisplayDate renders a YYYY-MM-DD date as "Jan 2".
func FormatDisplayDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(constants.DisplayDateFormat)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
