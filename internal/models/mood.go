package models

// MoodEntry is the mood color and diary text recorded for one day
type MoodEntry struct {
	Color int    `json:"color"` // index into MoodPalette
	Diary string `json:"diary"`
}

// MoodLog maps YYYY-MM-DD to that day's entry.
type MoodLog map[string]MoodEntry

// MoodPalette is ordered from the deepest purple to the palest yellow.
var MoodPalette = []string{
	"#7c3aed", "#8b5cf6", "#a78bfa", "#c4b5fd", "#ddd6fe",
	"#fbbf24", "#fcd34d", "#fde68a", "#fef3c7", "#fffbeb",
}

// ValidMoodIndex reports whether i addresses a palette color.
func ValidMoodIndex(i int) bool {
	return i >= 0 && i < len(MoodPalette)
}

// Clone returns an independent copy of the log.
func (l MoodLog) Clone() MoodLog {
	out := make(MoodLog, len(l))
	for day, entry := range l {
		out[day] = entry
	}
	return out
}
