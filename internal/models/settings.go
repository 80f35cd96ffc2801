package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/daymood/internal/constants"
)

var (
	ErrUnknownTheme  = errors.New("unknown theme")
	ErrUnknownAccent = errors.New("unknown accent color")
)

// Theme is the light/dark presentation mode
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

func (t Theme) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

func (t *Theme) UnmarshalText(text []byte) error {
	parsed, err := ParseTheme(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Accent is a named color theme applied to interactive elements
type Accent string

const (
	AccentPurple Accent = "Purple"
	AccentTeal   Accent = "Teal"
	AccentOrange Accent = "Orange"
	AccentGreen  Accent = "Green"
	AccentPink   Accent = "Pink"
)

// AccentColors holds the gradient endpoints for an accent.
type AccentColors struct {
	From string
	To   string
}

var accentPalette = map[Accent]AccentColors{
	AccentPurple: {From: "#4f46e5", To: "#9333ea"},
	AccentTeal:   {From: "#0d9488", To: "#0891b2"},
	AccentOrange: {From: "#ea580c", To: "#dc2626"},
	AccentGreen:  {From: "#16a34a", To: "#059669"},
	AccentPink:   {From: "#db2777", To: "#e11d48"},
}

// Accents returns every accent in display order.
func Accents() []Accent {
	return []Accent{AccentPurple, AccentTeal, AccentOrange, AccentGreen, AccentPink}
}

func ParseAccent(s string) (Accent, error) {
	s = strings.TrimSpace(s)
	for _, a := range Accents() {
		if strings.EqualFold(string(a), s) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAccent, s)
}

// Colors returns the accent's palette entry, falling back to Purple.
func (a Accent) Colors() AccentColors {
	if c, ok := accentPalette[a]; ok {
		return c
	}
	return accentPalette[AccentPurple]
}

func (a Accent) MarshalText() ([]byte, error) {
	return []byte(a), nil
}

func (a *Accent) UnmarshalText(text []byte) error {
	parsed, err := ParseAccent(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// UserSettings is the per-user settings singleton
type UserSettings struct {
	Theme          Theme  `json:"theme"`
	AccentColor    Accent `json:"accentColor"`
	EveningSummary bool   `json:"eveningSummary"`
}

// DefaultSettings returns the settings a new user starts with.
func DefaultSettings() UserSettings {
	return UserSettings{
		Theme:          Theme(constants.DefaultTheme),
		AccentColor:    Accent(constants.DefaultAccentColor),
		EveningSummary: constants.DefaultEveningSummary,
	}
}
