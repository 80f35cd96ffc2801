package system

import (
	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/models"
	"github.com/julianstephens/daymood/internal/storage"
	"github.com/julianstephens/daymood/internal/validation"
)

// loadSnapshot reads a user's stored collections as they are, without the
// fallbacks a session applies. Malformed blobs are reported as errors.
func loadSnapshot(adapter *storage.Adapter, date string) (validation.Snapshot, error) {
	snap := validation.Snapshot{
		SelectedDate: date,
		Habits:       []models.Habit{},
		Mood:         models.MoodLog{},
		Achievements: models.Achievements{},
	}
	if _, err := adapter.Load(constants.CollectionHabits, &snap.Habits); err != nil {
		return snap, err
	}
	if _, err := adapter.Load(constants.CollectionMood, &snap.Mood); err != nil {
		return snap, err
	}
	if _, err := adapter.Load(constants.CollectionAchievements, &snap.Achievements); err != nil {
		return snap, err
	}
	return snap, nil
}

// saveSnapshot writes the collections back.
func saveSnapshot(adapter *storage.Adapter, snap validation.Snapshot) error {
	if err := adapter.Save(constants.CollectionHabits, snap.Habits); err != nil {
		return err
	}
	if err := adapter.Save(constants.CollectionMood, snap.Mood); err != nil {
		return err
	}
	return adapter.Save(constants.CollectionAchievements, snap.Achievements)
}
