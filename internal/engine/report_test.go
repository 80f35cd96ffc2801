package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/daymood/internal/models"
)

func TestReport(t *testing.T) {
	habits := []models.Habit{
		{ID: "a", Name: "Read", Streak: 3, Category: models.CategoryLearning,
			Completions: map[string]bool{"2024-01-10": true}},
		{ID: "b", Name: "Run", Category: ""},
	}
	log := models.MoodLog{"2024-01-10": {Color: 6, Diary: "Good book"}}

	want := "HABIT TRACKER REPORT\n\n" +
		"Date: 2024-01-10\n\n" +
		"SUMMARY\n" +
		"Completed: 1/2 (50%)\n" +
		"👍 Good progress! Keep it up!\n\n" +
		"HABITS\n" +
		"✓ Read (Streak: 3, Category: Learning)\n" +
		"✗ Run (Streak: 0, Category: Other)\n" +
		"\nMOOD\n" +
		"Color Index: 6\n" +
		"Diary: Good book\n"

	assert.Equal(t, want, Report("2024-01-10", habits, log))
}

func TestReportMoodWithoutDiary(t *testing.T) {
	got := Report("2024-01-10", nil, models.MoodLog{"2024-01-10": {Color: 0}})
	assert.Contains(t, got, "Completed: 0/0 (0%)\n🌟 New day, new opportunities!\n")
	assert.Contains(t, got, "\nMOOD\nColor Index: 0\n")
	assert.NotContains(t, got, "Diary:")
}

func TestReportWithoutMood(t *testing.T) {
	got := Report("2024-01-10", nil, models.MoodLog{"2024-01-09": {Color: 2}})
	assert.NotContains(t, got, "MOOD")
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "habit-report-2024-01-10.txt", ReportFilename("2024-01-10"))
}
