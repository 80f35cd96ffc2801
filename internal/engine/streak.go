package engine

import (
	"github.com/julianstephens/daymood/internal/models"
	"github.com/julianstephens/daymood/internal/utils"
)

// ComputeStreak counts consecutive completed days walking backward from ref,
// stopping at the first day that is false or missing.
func ComputeStreak(completions map[string]bool, ref string) int {
	if !utils.ValidateDate(ref) {
		return 0
	}

	streak := 0
	day := ref
	for completions[day] {
		streak++
		day = utils.MustAddDays(day, -1)
	}
	return streak
}

// RecomputeStreaks returns a copy of habits with every streak recomputed
// relative to ref.
func RecomputeStreaks(habits []models.Habit, ref string) []models.Habit {
	out := models.CloneHabits(habits)
	for i := range out {
		out[i].Streak = ComputeStreak(out[i].Completions, ref)
	}
	return out
}
