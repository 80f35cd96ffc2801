package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daymood/internal/models"
)

const barWidth = 20

// Styles renders command output in the user's theme and accent.
type Styles struct {
	Accent  lipgloss.Color
	Title   lipgloss.Style
	Text    lipgloss.Style
	Subtle  lipgloss.Style
	Done    lipgloss.Style
	Pending lipgloss.Style
	Streak  lipgloss.Style
	Bar     lipgloss.Style
}

func NewStyles(settings models.UserSettings) Styles {
	colors := settings.AccentColor.Colors()
	accent := lipgloss.Color(colors.To)

	text, subtle := lipgloss.Color("235"), lipgloss.Color("243")
	if settings.Theme == models.ThemeDark {
		text, subtle = lipgloss.Color("252"), lipgloss.Color("245")
	}

	return Styles{
		Accent:  accent,
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color(colors.From)).Bold(true),
		Text:    lipgloss.NewStyle().Foreground(text),
		Subtle:  lipgloss.NewStyle().Foreground(subtle),
		Done:    lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")).Bold(true),
		Pending: lipgloss.NewStyle().Foreground(subtle),
		Streak:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ea580c")).Bold(true),
		Bar:     lipgloss.NewStyle().Foreground(accent),
	}
}

// Check renders a completion mark.
func (s Styles) Check(done bool) string {
	if done {
		return s.Done.Render("✓")
	}
	return s.Pending.Render("✗")
}

// ProgressBar draws a fixed-width bar filled to percentage.
func (s Styles) ProgressBar(percentage int) string {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	filled := percentage * barWidth / 100
	return s.Bar.Render(strings.Repeat("█", filled)) + s.Subtle.Render(strings.Repeat("░", barWidth-filled))
}

// MoodSwatch renders a palette color block, or an empty cell without a mood.
func (s Styles) MoodSwatch(color int, ok bool) string {
	if !ok || !models.ValidMoodIndex(color) {
		return s.Subtle.Render("··")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(models.MoodPalette[color])).Render("██")
}
