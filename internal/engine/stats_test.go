package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/models"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds up
		{3, 8, 38}, // 37.5 rounds up
		{1, 200, 1},
		{1, 201, 0},
		{3, 3, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.completed, tt.total), "Percentage(%d, %d)", tt.completed, tt.total)
	}
}

func TestDailyStatsForNoHabits(t *testing.T) {
	stats := DailyStatsFor(nil, "2024-01-10")
	assert.Equal(t, models.DailyStats{Completed: 0, Total: 0, Percentage: 0}, stats)
	assert.Equal(t, constants.SummaryNewDay, SummaryMessage(stats))
}

func TestDailyStatsFor(t *testing.T) {
	habits := []models.Habit{
		{ID: "a", Completions: map[string]bool{"2024-01-10": true}},
		{ID: "b", Completions: map[string]bool{"2024-01-10": false}},
		{ID: "c", Completions: map[string]bool{"2024-01-09": true}},
	}

	assert.Equal(t, models.DailyStats{Completed: 1, Total: 3, Percentage: 33}, DailyStatsFor(habits, "2024-01-10"))
	assert.Equal(t, models.DailyStats{Completed: 1, Total: 3, Percentage: 33}, DailyStatsFor(habits, "2024-01-09"))
}

func TestSummaryMessage(t *testing.T) {
	tests := []struct {
		name  string
		stats models.DailyStats
		want  string
	}{
		{"perfect", models.DailyStats{Completed: 4, Total: 4, Percentage: 100}, constants.SummaryPerfect},
		{"75 is great not perfect", models.DailyStats{Completed: 3, Total: 4, Percentage: 75}, constants.SummaryGreat},
		{"99", models.DailyStats{Completed: 99, Total: 100, Percentage: 99}, constants.SummaryGreat},
		{"50 is good", models.DailyStats{Completed: 2, Total: 4, Percentage: 50}, constants.SummaryGood},
		{"74", models.DailyStats{Completed: 74, Total: 100, Percentage: 74}, constants.SummaryGood},
		{"25", models.DailyStats{Completed: 1, Total: 4, Percentage: 25}, constants.SummaryProgress},
		{"rounds to zero", models.DailyStats{Completed: 1, Total: 300, Percentage: 0}, constants.SummaryProgress},
		{"nothing done", models.DailyStats{Completed: 0, Total: 4, Percentage: 0}, constants.SummaryNewDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummaryMessage(tt.stats))
		})
	}
}
