package models

import "time"

// Habit represents a practice tracked day by day
type Habit struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Completions map[string]bool `json:"completions"` // YYYY-MM-DD -> done
	Streak      int             `json:"streak"`
	CreatedAt   time.Time       `json:"createdAt"`
	Category    Category        `json:"category"`
}

// Completed reports whether the habit was marked done on day.
func (h Habit) Completed(day string) bool {
	return h.Completions[day]
}

// Clone returns a copy that does not share the completion map.
func (h Habit) Clone() Habit {
	c := h
	c.Completions = make(map[string]bool, len(h.Completions))
	for day, done := range h.Completions {
		c.Completions[day] = done
	}
	return c
}

// CloneHabits deep-copies a habit collection.
func CloneHabits(habits []Habit) []Habit {
	if habits == nil {
		return nil
	}
	out := make([]Habit, len(habits))
	for i, h := range habits {
		out[i] = h.Clone()
	}
	return out
}
