package engine

import (
	"time"

	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/models"
)

// Evaluation is the outcome of one achievement check.
type Evaluation struct {
	Unlocked   models.Achievements // new unlocks, in rule order
	PerfectDay bool                // a perfect-<date> achievement was unlocked
}

// Any reports whether anything was unlocked.
func (e Evaluation) Any() bool {
	return len(e.Unlocked) > 0
}

// PerfectDayID is the date scoped achievement id for date.
func PerfectDayID(date string) string {
	return constants.AchievementPerfectPrefix + date
}

// EvaluateAchievements applies the unlock rules to habits as of date. Rules
// never unlock an id already present in existing, so repeated calls are
// idempotent.
func EvaluateAchievements(existing models.Achievements, habits []models.Habit, date string, now time.Time) Evaluation {
	var eval Evaluation

	unlock := func(id, title, description, icon string) bool {
		if existing.Has(id) || eval.Unlocked.Has(id) {
			return false
		}
		eval.Unlocked = append(eval.Unlocked, models.Achievement{
			ID:          id,
			Title:       title,
			Description: description,
			Icon:        icon,
			UnlockedAt:  now,
		})
		return true
	}

	longest := longestStreak(habits)
	if longest >= 3 {
		unlock(constants.AchievementThreeDayStreak, "3-Day Warrior", "Maintained a 3-day streak!", "🔥")
	}
	if longest >= 7 {
		unlock(constants.AchievementSevenDayStreak, "Week Champion", "Maintained a 7-day streak!", "🏆")
	}

	stats := DailyStatsFor(habits, date)
	if stats.Total > 0 && stats.Percentage == 100 {
		eval.PerfectDay = unlock(PerfectDayID(date), "Perfect Day", "Completed all habits today!", "⭐")
	}

	return eval
}

func longestStreak(habits []models.Habit) int {
	longest := 0
	for _, h := range habits {
		if h.Streak > longest {
			longest = h.Streak
		}
	}
	return longest
}
