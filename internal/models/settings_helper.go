package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/daymood/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a UserSettings struct.
// Keys that are absent keep their default value.
func MapToSettings(data map[string]string) (UserSettings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingTheme:
			theme, err := ParseTheme(value)
			if err != nil {
				return UserSettings{}, fmt.Errorf("parsing theme: %w", err)
			}
			settings.Theme = theme
		case constants.SettingAccentColor:
			accent, err := ParseAccent(value)
			if err != nil {
				return UserSettings{}, fmt.Errorf("parsing accentColor: %w", err)
			}
			settings.AccentColor = accent
		case constants.SettingEveningSummary:
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return UserSettings{}, fmt.Errorf("parsing eveningSummary: %w", err)
			}
			settings.EveningSummary = enabled
		}
	}
	return settings, nil
}

// SettingsToMap converts a UserSettings struct to a map of key-value pairs.
func SettingsToMap(settings UserSettings) map[string]string {
	return map[string]string{
		constants.SettingTheme:          string(settings.Theme),
		constants.SettingAccentColor:    string(settings.AccentColor),
		constants.SettingEveningSummary: strconv.FormatBool(settings.EveningSummary),
	}
}
