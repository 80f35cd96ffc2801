package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daymood/internal/engine"
	"github.com/julianstephens/daymood/internal/models"
	"github.com/julianstephens/daymood/internal/utils"
)

// AddHabit appends a habit built from in. A blank name is refused and the
// state is returned unchanged with ok=false.
func AddHabit(s State, in NewHabit, id string, now time.Time) (State, models.Habit, bool) {
	name := strings.TrimSpace(in.Name)
	if name == "" || id == "" || s.habitIndex(id) >= 0 {
		return s, models.Habit{}, false
	}

	category := in.Category
	if category == "" {
		category = models.CategoryOther
	}

	habit := models.Habit{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Completions: map[string]bool{},
		Streak:      0,
		CreatedAt:   now,
		Category:    category,
	}

	next := s.Clone()
	next.Habits = append(next.Habits, habit)
	return next, habit.Clone(), true
}

// ToggleCompletion flips the habit's completion on the selected date and
// recomputes its streak relative to that date.
func ToggleCompletion(s State, id string) (State, bool) {
	i := s.habitIndex(id)
	if i < 0 {
		return s, false
	}

	next := s.Clone()
	h := &next.Habits[i]
	h.Completions[s.SelectedDate] = !h.Completions[s.SelectedDate]
	h.Streak = engine.ComputeStreak(h.Completions, s.SelectedDate)
	return next, true
}

// DeleteHabit removes the habit and places it in the undo buffer until
// expiresAt, replacing whatever the buffer held.
func DeleteHabit(s State, id string, expiresAt time.Time) (State, bool) {
	i := s.habitIndex(id)
	if i < 0 {
		return s, false
	}

	next := s.Clone()
	removed := next.Habits[i]
	next.Habits = append(next.Habits[:i], next.Habits[i+1:]...)
	next.Undo = &UndoBuffer{Habit: removed, ExpiresAt: expiresAt}
	return next, true
}

// UndoDelete restores the buffered habit if the grace window is still open at
// now. The buffer is cleared either way, so a second call is a no-op.
func UndoDelete(s State, now time.Time) (State, bool) {
	if s.Undo == nil {
		return s, false
	}

	next := s.Clone()
	buffered := next.Undo
	next.Undo = nil

	if buffered.Expired(now) || next.habitIndex(buffered.Habit.ID) >= 0 {
		return next, false
	}

	restored := buffered.Habit
	restored.Streak = engine.ComputeStreak(restored.Completions, s.SelectedDate)
	next.Habits = append(next.Habits, restored)
	return next, true
}

// ExpireUndo drops the undo buffer once its grace window has closed.
func ExpireUndo(s State, now time.Time) (State, bool) {
	if s.Undo == nil || !s.Undo.Expired(now) {
		return s, false
	}
	next := s.Clone()
	next.Undo = nil
	return next, true
}

// SetMood records color for the selected date together with the current
// diary draft.
func SetMood(s State, color int) (State, error) {
	if !models.ValidMoodIndex(color) {
		return s, fmt.Errorf("mood color %d out of range 0-%d", color, len(models.MoodPalette)-1)
	}

	next := s.Clone()
	next.Mood[s.SelectedDate] = models.MoodEntry{Color: color, Diary: s.DiaryDraft}
	return next, nil
}

// ApplyDiary stores text as the diary of date. A date with no mood yet gets
// the first palette color.
func ApplyDiary(s State, date, text string) State {
	next := s.Clone()
	entry := next.Mood[date]
	entry.Diary = text
	next.Mood[date] = entry
	return next
}

// SetDiaryDraft updates the text being edited without persisting it.
func SetDiaryDraft(s State, text string) State {
	next := s.Clone()
	next.DiaryDraft = text
	return next
}

// SelectDate moves the session to date. Streaks are recomputed relative to it
// and the diary draft is loaded from its mood entry.
func SelectDate(s State, date string) (State, error) {
	if !utils.ValidateDate(date) {
		return s, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	next := s.Clone()
	next.SelectedDate = date
	next.Habits = engine.RecomputeStreaks(next.Habits, date)
	next.DiaryDraft = next.Mood[date].Diary
	return next, nil
}

// UpdateSettings replaces the settings object.
func UpdateSettings(s State, settings models.UserSettings) State {
	next := s.Clone()
	next.Settings = settings
	return next
}

// ApplyAchievements appends an evaluation's unlocks. A perfect day starts the
// celebration.
func ApplyAchievements(s State, eval engine.Evaluation) State {
	if !eval.Any() {
		return s
	}
	next := s.Clone()
	next.Achievements = append(next.Achievements, eval.Unlocked...)
	if eval.PerfectDay {
		next.Celebrating = true
	}
	return next
}

// ShowToast replaces the visible toast.
func ShowToast(s State, text string, expiresAt time.Time) State {
	next := s.Clone()
	next.Toast = &Toast{Text: text, ExpiresAt: expiresAt}
	return next
}

// DismissToast clears the toast.
func DismissToast(s State) State {
	next := s.Clone()
	next.Toast = nil
	return next
}

// EndCelebration clears the celebration signal.
func EndCelebration(s State) State {
	next := s.Clone()
	next.Celebrating = false
	return next
}
