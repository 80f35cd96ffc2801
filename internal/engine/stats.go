package engine

import (
	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/models"
)

// Percentage is round(100*completed/total), rounding halves up, and 0 when
// total is 0.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*completed + total) / (2 * total)
}

// DailyStatsFor counts the habits completed on date.
func DailyStatsFor(habits []models.Habit, date string) models.DailyStats {
	completed := 0
	for _, h := range habits {
		if h.Completed(date) {
			completed++
		}
	}
	return models.DailyStats{
		Completed:  completed,
		Total:      len(habits),
		Percentage: Percentage(completed, len(habits)),
	}
}

// SummaryMessage picks the daily message tier. Each tier includes its lower
// bound. Any completion at all earns the encouragement tier, even when the
// percentage rounds to 0.
func SummaryMessage(stats models.DailyStats) string {
	switch {
	case stats.Percentage == 100:
		return constants.SummaryPerfect
	case stats.Percentage >= 75:
		return constants.SummaryGreat
	case stats.Percentage >= 50:
		return constants.SummaryGood
	case stats.Completed > 0:
		return constants.SummaryProgress
	default:
		return constants.SummaryNewDay
	}
}
