package engine

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/models"
)

// Report renders the plain-text export for date.
func Report(date string, habits []models.Habit, log models.MoodLog) string {
	stats := DailyStatsFor(habits, date)

	var b strings.Builder
	b.WriteString("HABIT TRACKER REPORT\n\n")
	fmt.Fprintf(&b, "Date: %s\n\n", date)
	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "Completed: %d/%d (%d%%)\n", stats.Completed, stats.Total, stats.Percentage)
	fmt.Fprintf(&b, "%s\n\n", SummaryMessage(stats))
	b.WriteString("HABITS\n")
	for _, h := range habits {
		mark := "✗"
		if h.Completed(date) {
			mark = "✓"
		}
		fmt.Fprintf(&b, "%s %s (Streak: %d, Category: %s)\n", mark, h.Name, h.Streak, h.Category)
	}

	if entry, ok := log[date]; ok {
		b.WriteString("\nMOOD\n")
		fmt.Fprintf(&b, "Color Index: %d\n", entry.Color)
		if entry.Diary != "" {
			fmt.Fprintf(&b, "Diary: %s\n", entry.Diary)
		}
	}

	return b.String()
}

// ReportFilename is the download name of the export for date.
func ReportFilename(date string) string {
	return constants.ReportFilePrefix + date + constants.ReportFileSuffix
}
