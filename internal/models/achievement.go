package models

import "time"

// Achievement is an unlocked milestone. IDs are unique within a user's collection.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// Achievements is a user's unlock history in unlock order.
type Achievements []Achievement

// Has reports whether an achievement with id is already unlocked.
func (a Achievements) Has(id string) bool {
	for _, ach := range a {
		if ach.ID == id {
			return true
		}
	}
	return false
}

// Recent returns up to n of the latest unlocks, newest first.
func (a Achievements) Recent(n int) Achievements {
	if n <= 0 {
		return Achievements{}
	}
	start := len(a) - n
	if start < 0 {
		start = 0
	}
	out := make(Achievements, 0, len(a)-start)
	for i := len(a) - 1; i >= start; i-- {
		out = append(out, a[i])
	}
	return out
}
