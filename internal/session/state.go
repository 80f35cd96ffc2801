package session

import (
	"time"

	"github.com/julianstephens/daymood/internal/models"
)

// UndoBuffer holds the most recently deleted habit until ExpiresAt.
type UndoBuffer struct {
	Habit     models.Habit `json:"habit"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Expired reports whether the grace window has closed at now.
func (u *UndoBuffer) Expired(now time.Time) bool {
	return u == nil || !now.Before(u.ExpiresAt)
}

// Toast is the transient message currently on screen.
type Toast struct {
	Text      string
	ExpiresAt time.Time
}

// NewHabit is the user input for a habit to create.
type NewHabit struct {
	Name        string
	Description string
	Category    models.Category
}

// State is one user's session snapshot. Mutation functions take a State and
// return the next one; they never modify the input.
type State struct {
	UserID       string
	SelectedDate string
	Habits       []models.Habit
	Mood         models.MoodLog
	Achievements models.Achievements
	Settings     models.UserSettings
	Undo         *UndoBuffer
	DiaryDraft   string
	Toast        *Toast
	Celebrating  bool
}

// NewState is the empty state of a user seen for the first time.
func NewState(userID, selectedDate string) State {
	return State{
		UserID:       userID,
		SelectedDate: selectedDate,
		Habits:       []models.Habit{},
		Mood:         models.MoodLog{},
		Achievements: models.Achievements{},
		Settings:     models.DefaultSettings(),
	}
}

// Clone deep-copies the state.
func (s State) Clone() State {
	c := s
	c.Habits = models.CloneHabits(s.Habits)
	if c.Habits == nil {
		c.Habits = []models.Habit{}
	}
	c.Mood = s.Mood.Clone()
	c.Achievements = append(models.Achievements{}, s.Achievements...)
	if s.Undo != nil {
		undo := *s.Undo
		undo.Habit = s.Undo.Habit.Clone()
		c.Undo = &undo
	}
	if s.Toast != nil {
		toast := *s.Toast
		c.Toast = &toast
	}
	return c
}

// Habit finds a habit by id.
func (s State) Habit(id string) (models.Habit, bool) {
	if i := s.habitIndex(id); i >= 0 {
		return s.Habits[i], true
	}
	return models.Habit{}, false
}

// CurrentMood is the mood entry of the selected date.
func (s State) CurrentMood() (models.MoodEntry, bool) {
	entry, ok := s.Mood[s.SelectedDate]
	return entry, ok
}

func (s State) habitIndex(id string) int {
	for i, h := range s.Habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}
