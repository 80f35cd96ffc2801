package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/daymood/internal/models"
)

// ResolveHabit finds a habit by its 1-based list position, full id, unique
// id prefix or case-insensitive name.
func ResolveHabit(habits []models.Habit, ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Habit{}, fmt.Errorf("habit reference cannot be empty")
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(habits) {
			return models.Habit{}, fmt.Errorf("no habit at position %d (have %d)", n, len(habits))
		}
		return habits[n-1], nil
	}

	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}

	var matches []models.Habit
	for _, h := range habits {
		if strings.HasPrefix(h.ID, ref) || strings.EqualFold(h.Name, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("habit not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("habit reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// ShortID trims an id for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
