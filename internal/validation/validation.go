package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/daymood/internal/engine"
	"github.com/julianstephens/daymood/internal/models"
	"github.com/julianstephens/daymood/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitID       ConflictType = "duplicate_habit_id"
	ConflictMissingHabitID         ConflictType = "missing_habit_id"
	ConflictBlankHabitName         ConflictType = "blank_habit_name"
	ConflictInvalidCompletionDate  ConflictType = "invalid_completion_date"
	ConflictStaleStreak            ConflictType = "stale_streak"
	ConflictInvalidMoodDate        ConflictType = "invalid_mood_date"
	ConflictInvalidMoodColor       ConflictType = "invalid_mood_color"
	ConflictDuplicateAchievementID ConflictType = "duplicate_achievement_id"
)

// Conflict represents an inconsistency found in a user's stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Habit names or achievement ids involved
	IDs         []string // IDs involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Snapshot is the stored data of one user.
type Snapshot struct {
	SelectedDate string
	Habits       []models.Habit
	Mood         models.MoodLog
	Achievements models.Achievements
}

// Validator validates a user's collections for inconsistencies
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Validate runs every check. Streaks are checked against SelectedDate.
func (v *Validator) Validate(s Snapshot) ValidationResult {
	var result ValidationResult
	result.Conflicts = append(result.Conflicts, v.ValidateHabits(s.Habits, s.SelectedDate).Conflicts...)
	result.Conflicts = append(result.Conflicts, v.ValidateMood(s.Mood).Conflicts...)
	result.Conflicts = append(result.Conflicts, v.ValidateAchievements(s.Achievements).Conflicts...)
	return result
}

// ValidateHabits checks habit identity, names, completion keys and streaks.
func (v *Validator) ValidateHabits(habits []models.Habit, selectedDate string) ValidationResult {
	var result ValidationResult

	byID := make(map[string][]models.Habit)
	var order []string
	for _, h := range habits {
		if h.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingHabitID,
				Description: fmt.Sprintf("Habit %q has no id", h.Name),
				Items:       []string{h.Name},
			})
			continue
		}
		if _, seen := byID[h.ID]; !seen {
			order = append(order, h.ID)
		}
		byID[h.ID] = append(byID[h.ID], h)
	}

	for _, id := range order {
		group := byID[id]
		if len(group) < 2 {
			continue
		}
		names := make([]string, len(group))
		for i, h := range group {
			names[i] = h.Name
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateHabitID,
			Description: fmt.Sprintf("%d habits share id %s: %s", len(group), id, strings.Join(names, ", ")),
			Items:       names,
			IDs:         []string{id},
		})
	}

	checkStreaks := utils.ValidateDate(selectedDate)
	for _, h := range habits {
		if strings.TrimSpace(h.Name) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictBlankHabitName,
				Description: fmt.Sprintf("Habit %s has a blank name", h.ID),
				IDs:         []string{h.ID},
			})
		}

		var badDates []string
		for date := range h.Completions {
			if !utils.ValidateDate(date) {
				badDates = append(badDates, date)
			}
		}
		sort.Strings(badDates)
		for _, date := range badDates {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidCompletionDate,
				Description: fmt.Sprintf("Habit %q has a completion on invalid date %q", h.Name, date),
				Date:        date,
				Items:       []string{h.Name},
				IDs:         []string{h.ID},
			})
		}

		if !checkStreaks {
			continue
		}
		if want := engine.ComputeStreak(h.Completions, selectedDate); h.Streak != want {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictStaleStreak,
				Description: fmt.Sprintf("Habit %q stores streak %d but its completions give %d as of %s", h.Name, h.Streak, want, selectedDate),
				Date:        selectedDate,
				Items:       []string{h.Name},
				IDs:         []string{h.ID},
			})
		}
	}

	return result
}

// ValidateMood checks mood dates and palette indices.
func (v *Validator) ValidateMood(mood models.MoodLog) ValidationResult {
	var result ValidationResult

	dates := make([]string, 0, len(mood))
	for date := range mood {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		entry := mood[date]
		if !utils.ValidateDate(date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidMoodDate,
				Description: fmt.Sprintf("Mood entry keyed by invalid date %q", date),
				Date:        date,
			})
		}
		if !models.ValidMoodIndex(entry.Color) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidMoodColor,
				Description: fmt.Sprintf("Mood on %s uses color %d, outside 0-%d", date, entry.Color, len(models.MoodPalette)-1),
				Date:        date,
			})
		}
	}

	return result
}

// ValidateAchievements checks that every achievement id is unique.
func (v *Validator) ValidateAchievements(achievements models.Achievements) ValidationResult {
	var result ValidationResult

	counts := make(map[string]int)
	var order []string
	for _, a := range achievements {
		if counts[a.ID] == 0 {
			order = append(order, a.ID)
		}
		counts[a.ID]++
	}

	for _, id := range order {
		if counts[id] < 2 {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateAchievementID,
			Description: fmt.Sprintf("Achievement %s unlocked %d times", id, counts[id]),
			Items:       []string{id},
			IDs:         []string{id},
		})
	}

	return result
}

// AutoFix repairs the conflicts that have a safe mechanical fix: stale
// streaks are recomputed, and for duplicate habit or achievement ids the
// first occurrence is kept. Other conflicts need a human and are left alone.
func AutoFix(conflicts []Conflict, s Snapshot) (Snapshot, []FixAction) {
	fixed := Snapshot{
		SelectedDate: s.SelectedDate,
		Habits:       models.CloneHabits(s.Habits),
		Mood:         s.Mood.Clone(),
		Achievements: append(models.Achievements{}, s.Achievements...),
	}
	var actions []FixAction

	for _, conflict := range conflicts {
		switch conflict.Type {
		case ConflictStaleStreak:
			for i := range fixed.Habits {
				h := &fixed.Habits[i]
				if !contains(conflict.IDs, h.ID) {
					continue
				}
				old := h.Streak
				h.Streak = engine.ComputeStreak(h.Completions, s.SelectedDate)
				actions = append(actions, FixAction{
					Action:         fmt.Sprintf("Recomputed streak of %q: %d -> %d", h.Name, old, h.Streak),
					SourceConflict: conflict,
				})
			}

		case ConflictDuplicateHabitID:
			var kept []models.Habit
			removed := 0
			seen := false
			for _, h := range fixed.Habits {
				if contains(conflict.IDs, h.ID) {
					if seen {
						removed++
						continue
					}
					seen = true
				}
				kept = append(kept, h)
			}
			fixed.Habits = kept
			if removed > 0 {
				actions = append(actions, FixAction{
					Action:         fmt.Sprintf("Removed %d duplicate habit(s) with id %s (kept the first)", removed, strings.Join(conflict.IDs, ", ")),
					SourceConflict: conflict,
				})
			}

		case ConflictDuplicateAchievementID:
			var kept models.Achievements
			removed := 0
			for _, a := range fixed.Achievements {
				if contains(conflict.IDs, a.ID) && kept.Has(a.ID) {
					removed++
					continue
				}
				kept = append(kept, a)
			}
			fixed.Achievements = kept
			if removed > 0 {
				actions = append(actions, FixAction{
					Action:         fmt.Sprintf("Removed %d duplicate unlock(s) of %s", removed, strings.Join(conflict.IDs, ", ")),
					SourceConflict: conflict,
				})
			}
		}
	}

	if fixed.Habits == nil {
		fixed.Habits = []models.Habit{}
	}
	return fixed, actions
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
