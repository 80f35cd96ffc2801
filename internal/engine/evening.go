package engine

import (
	"fmt"
	"time"

	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/models"
)

// EveningSummaryDue reports whether the once-a-day summary should fire at
// now. now must already be in the user's location; the hour is read from its
// wall clock.
func EveningSummaryDue(now time.Time, settings models.UserSettings, alreadyShown bool) bool {
	if !settings.EveningSummary || alreadyShown {
		return false
	}
	return now.Hour() >= constants.EveningSummaryHour
}

// EveningSummaryMessage formats the day's stats as a notification.
func EveningSummaryMessage(stats models.DailyStats) string {
	glyph := "💪"
	if stats.Percentage >= constants.EveningSummaryCheer {
		glyph = "🎉"
	}
	return fmt.Sprintf(constants.ToastEveningSummary, stats.Completed, stats.Total, glyph)
}
