package engine

import (
	"fmt"
	"sort"

	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/models"
	"github.com/julianstephens/daymood/internal/utils"
)

// DiaryPreviewLength is how many characters of a diary entry a listing shows
// before truncating.
const DiaryPreviewLength = 60

// DayRate is the completion rate for one day of a week window.
type DayRate struct {
	Date string
	models.DailyStats
}

// MoodDay is one cell of the mood strip. HasMood is false for days without an entry.
type MoodDay struct {
	Date    string
	Color   int
	HasMood bool
}

// DiaryEntry is a non-empty diary text with its mood color.
type DiaryEntry struct {
	Date  string
	Color int
	Text  string
}

// Preview shortens the entry text for list display.
func (d DiaryEntry) Preview() string {
	runes := []rune(d.Text)
	if len(runes) <= DiaryPreviewLength {
		return d.Text
	}
	return string(runes[:DiaryPreviewLength]) + "..."
}

// WeekWindow returns the 7 dates of the window offset whole weeks before the
// one ending on today, oldest first. Position i is today - (6-i) - 7*offset.
func WeekWindow(today string, offset int) ([]string, error) {
	if !utils.ValidateDate(today) {
		return nil, fmt.Errorf("invalid date %q", today)
	}
	if offset < 0 {
		return nil, fmt.Errorf("week offset must not be negative, got %d", offset)
	}

	days := make([]string, 0, constants.WeekLength)
	for i := 0; i < constants.WeekLength; i++ {
		days = append(days, utils.MustAddDays(today, -(constants.WeekLength-1-i)-constants.WeekLength*offset))
	}
	return days, nil
}

// WeekLabel names a week window for display.
func WeekLabel(offset int, days []string) string {
	switch {
	case offset == 0:
		return "This Week"
	case offset == 1:
		return "Last Week"
	case len(days) == 0:
		return ""
	}
	return fmt.Sprintf("%s - %s", utils.FormatDisplayDate(days[0]), utils.FormatDisplayDate(days[len(days)-1]))
}

// WeeklyCompletion computes the completion rate of every day in days.
func WeeklyCompletion(habits []models.Habit, days []string) []DayRate {
	rates := make([]DayRate, 0, len(days))
	for _, day := range days {
		rates = append(rates, DayRate{Date: day, DailyStats: DailyStatsFor(habits, day)})
	}
	return rates
}

// MoodStrip lays out the mood color of every day in days.
func MoodStrip(log models.MoodLog, days []string) []MoodDay {
	strip := make([]MoodDay, 0, len(days))
	for _, day := range days {
		entry, ok := log[day]
		strip = append(strip, MoodDay{Date: day, Color: entry.Color, HasMood: ok})
	}
	return strip
}

// DiaryListing returns the days in days that have diary text, most recent first.
func DiaryListing(log models.MoodLog, days []string) []DiaryEntry {
	var entries []DiaryEntry
	for i := len(days) - 1; i >= 0; i-- {
		entry, ok := log[days[i]]
		if !ok || entry.Diary == "" {
			continue
		}
		entries = append(entries, DiaryEntry{Date: days[i], Color: entry.Color, Text: entry.Diary})
	}
	return entries
}

// TopStreaks returns up to n habits ordered by streak, longest first. Ties
// keep collection order.
func TopStreaks(habits []models.Habit, n int) []models.Habit {
	sorted := models.CloneHabits(habits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Streak > sorted[j].Streak
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// FilterByCategory keeps the habits in category. An empty category keeps all.
func FilterByCategory(habits []models.Habit, category models.Category) []models.Habit {
	if category == "" {
		return habits
	}
	var out []models.Habit
	for _, h := range habits {
		if h.Category.String() == category.String() {
			out = append(out, h)
		}
	}
	return out
}
