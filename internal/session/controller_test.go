package session

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/models"
	"github.com/julianstephens/daymood/internal/notifier"
	"github.com/julianstephens/daymood/internal/scheduler"
	"github.com/julianstephens/daymood/internal/storage"
)

type harness struct {
	store    *storage.MemoryStore
	clock    *scheduler.ManualClock
	recorder *notifier.Recorder
	ids      int
}

func newHarness(start time.Time) *harness {
	return &harness{
		store:    storage.NewMemoryStore(),
		clock:    scheduler.NewManualClock(start),
		recorder: &notifier.Recorder{},
	}
}

func (h *harness) open(t *testing.T, date string) *Controller {
	t.Helper()
	c, err := Open("u1", Options{
		Provider: h.store,
		Clock:    h.clock,
		Location: time.UTC,
		Notifier: h.recorder,
		NewID: func() string {
			h.ids++
			return fmt.Sprintf("h%d", h.ids)
		},
		SelectedDate: date,
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func (h *harness) stored(t *testing.T, key string, dst any) {
	t.Helper()
	raw, err := h.store.Get(key)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dst))
}

func TestOpenNewUserGetsDefaults(t *testing.T) {
	h := newHarness(t0)
	c := h.open(t, "")

	s := c.State()
	assert.Equal(t, "2024-01-10", s.SelectedDate)
	assert.Empty(t, s.Habits)
	assert.Empty(t, s.Mood)
	assert.Empty(t, s.Achievements)
	assert.Equal(t, models.DefaultSettings(), s.Settings)
	assert.Nil(t, s.Undo)
}

func TestOpenRequiresUser(t *testing.T) {
	_, err := Open("", Options{Provider: storage.NewMemoryStore()})
	assert.ErrorIs(t, err, ErrNoUser)

	_, err = Open("u1", Options{})
	assert.Error(t, err)

	_, err = Open("u1", Options{Provider: storage.NewMemoryStore(), SelectedDate: "tomorrow"})
	assert.Error(t, err)
}

func TestOpenCorruptHabitsFallsBackToEmpty(t *testing.T) {
	h := newHarness(t0)
	require.NoError(t, h.store.Put("habits-u1", []byte("{corrupt")))
	require.NoError(t, h.store.Put("settings-u1", []byte(`{"theme":"dark","accentColor":"Teal","eveningSummary":false}`)))

	c := h.open(t, "2024-01-10")
	s := c.State()
	assert.Empty(t, s.Habits)
	assert.Equal(t, models.ThemeDark, s.Settings.Theme)

	// The session stays usable and the next save replaces the corrupt blob
	_, ok, err := c.AddHabit(NewHabit{Name: "Read"})
	require.NoError(t, err)
	require.True(t, ok)

	var habits []models.Habit
	h.stored(t, "habits-u1", &habits)
	assert.Len(t, habits, 1)
}

func TestOpenMalformedSettingsFallBackToDefaults(t *testing.T) {
	h := newHarness(t0)
	require.NoError(t, h.store.Put("settings-u1", []byte(`{"theme":"sepia"}`)))
	require.NoError(t, h.store.Put("mood-u1", []byte(`[1,2,3]`)))

	s := h.open(t, "2024-01-10").State()
	assert.Equal(t, models.DefaultSettings(), s.Settings)
	assert.Empty(t, s.Mood)
}

func TestOpenRecomputesStreaksForSelectedDate(t *testing.T) {
	h := newHarness(t0)
	habits := []models.Habit{{
		ID: "h1", Name: "Read", Streak: 42,
		Completions: map[string]bool{"2024-01-08": true, "2024-01-09": true},
	}}
	raw, _ := json.Marshal(habits)
	require.NoError(t, h.store.Put("habits-u1", raw))

	assert.Equal(t, 0, h.open(t, "2024-01-10").State().Habits[0].Streak)
	assert.Equal(t, 2, h.open(t, "2024-01-09").State().Habits[0].Streak)
}

func TestReadThreeDayStreakUnlocksOnce(t *testing.T) {
	h := newHarness(t0)
	c := h.open(t, "2024-01-08")

	habit, ok, err := c.AddHabit(NewHabit{Name: "Read"})
	require.NoError(t, err)
	require.True(t, ok)
	// A second habit keeps the days from being perfect
	_, _, err = c.AddHabit(NewHabit{Name: "Run"})
	require.NoError(t, err)

	for i, date := range []string{"2024-01-08", "2024-01-09", "2024-01-10"} {
		require.NoError(t, c.SelectDate(date))
		_, err := c.Toggle(habit.ID)
		require.NoError(t, err)

		unlocked := c.State().Achievements.Has(constants.AchievementThreeDayStreak)
		assert.Equal(t, i == 2, unlocked, "after toggle on %s", date)
	}

	s := c.State()
	read, _ := s.Habit(habit.ID)
	assert.Equal(t, 3, read.Streak)

	// Further mutations never duplicate the unlock
	_, err = c.Toggle(habit.ID)
	require.NoError(t, err)
	_, err = c.Toggle(habit.ID)
	require.NoError(t, err)

	var stored models.Achievements
	h.stored(t, "achievements-u1", &stored)
	count := 0
	for _, a := range stored {
		if a.ID == constants.AchievementThreeDayStreak {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, h.recorder.Texts(notifier.KindToast), "🎉 Achievement unlocked: 3-Day Warrior!")
}

func TestPerfectDayCelebrates(t *testing.T) {
	h := newHarness(t0)
	c := h.open(t, "2024-01-10")

	habit, _, _ := c.AddHabit(NewHabit{Name: "Read"})
	_, err := c.Toggle(habit.ID)
	require.NoError(t, err)

	s := c.State()
	assert.True(t, s.Achievements.Has("perfect-2024-01-10"))
	assert.True(t, s.Celebrating)
	assert.Len(t, h.recorder.Texts(notifier.KindCelebration), 1)

	h.clock.Advance(constants.CelebrationDuration)
	assert.False(t, c.State().Celebrating)

	// Untoggle and toggle again: same date never unlocks twice
	_, _ = c.Toggle(habit.ID)
	_, _ = c.Toggle(habit.ID)
	assert.Len(t, h.recorder.Texts(notifier.KindCelebration), 1)
	assert.Len(t, c.State().Achievements, 1)
}

func TestDeleteUndoWithinGraceWindow(t *testing.T) {
	h := newHarness(t0)
	c := h.open(t, "2024-01-10")

	habit, _, _ := c.AddHabit(NewHabit{Name: "Read", Category: models.CategoryLearning})
	_, _, _ = c.AddHabit(NewHabit{Name: "Run"})
	_, _ = c.Toggle(habit.ID)

	ok, err := c.Delete(habit.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, c.State().Habits, 1)

	var buffered UndoBuffer
	h.stored(t, "undo-u1", &buffered)
	assert.Equal(t, habit.ID, buffered.Habit.ID)

	h.clock.Advance(9 * time.Second)
	ok, err = c.Undo()
	require.NoError(t, err)
	require.True(t, ok)

	restored, found := c.State().Habit(habit.ID)
	require.True(t, found)
	assert.Equal(t, 1, restored.Streak)
	assert.Equal(t, models.CategoryLearning, restored.Category)
	assert.True(t, restored.Completed("2024-01-10"))

	_, err = h.store.Get("undo-u1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Twice in a row is a no-op
	ok, err = c.Undo()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, c.State().Habits, 2)

	assert.Equal(t, []string{constants.ToastHabitDeleted, constants.ToastHabitRestored},
		h.recorder.Texts(notifier.KindToast))
}

func TestUndoAfterGraceWindowExpires(t *testing.T) {
	h := newHarness(t0)
	c := h.open(t, "2024-01-10")

	habit, _, _ := c.AddHabit(NewHabit{Name: "Read"})
	_, err := c.Delete(habit.ID)
	require.NoError(t, err)

	h.clock.Advance(constants.UndoGraceWindow)
	assert.Nil(t, c.State().Undo)
	_, err = h.store.Get("undo-u1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	ok, err := c.Undo()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, c.State().Habits)
}

func TestUndoAcrossSessions(t *testing.T) {
	h := newHarness(t0)
	first := h.open(t, "2024-01-10")
	habit, _, _ := first.AddHabit(NewHabit{Name: "Read"})
	_, err := first.Delete(habit.ID)
	require.NoError(t, err)
	first.Close()

	h.clock.Set(t0.Add(5 * time.Second))
	second := h.open(t, "2024-01-10")
	require.NotNil(t, second.State().Undo)

	ok, err := second.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, second.State().Habits, 1)
}

func TestExpiredUndoIsDroppedOnOpen(t *testing.T) {
	h := newHarness(t0)
	first := h.open(t, "2024-01-10")
	habit, _, _ := first.AddHabit(NewHabit{Name: "Read"})
	_, _ = first.Delete(habit.ID)
	first.Close()

	h.clock.Set(t0.Add(time.Minute))
	second := h.open(t, "2024-01-10")
	assert.Nil(t, second.State().Undo)

	_, err := h.store.Get("undo-u1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDiaryDebounce(t *testing.T) {
	h := newHarness(t0)
	c := h.open(t, "2024-01-10")

	for _, text := range []string{"G", "Go", "Goo", "Good"} {
		c.UpdateDiary(text)
		h.clock.Advance(500 * time.Millisecond)
	}
	assert.Equal(t, "Good", c.State().DiaryDraft)
	assert.True(t, c.DiaryPending())
	_, err := h.store.Get("mood-u1")
	assert.ErrorIs(t, err, storage.ErrNotFound, "nothing persisted while typing")

	h.clock.Advance(1500 * time.Millisecond)
	assert.False(t, c.DiaryPending())

	var mood models.MoodLog
	h.stored(t, "mood-u1", &mood)
	assert.Equal(t, models.MoodEntry{Color: 0, Diary: "Good"}, mood["2024-01-10"])
}

func TestSetMoodCarriesDraftAndCancelsDebounce(t *testing.T) {
	h := newHarness(t0)
	c := h.open(t, "2024-01-10")

	c.UpdateDiary("sunny")
	require.NoError(t, c.SetMood(6))
	assert.False(t, c.DiaryPending())

	var mood models.MoodLog
	h.stored(t, "mood-u1", &mood)
	assert.Equal(t, models.MoodEntry{Color: 6, Diary: "sunny"}, mood["2024-01-10"])

	assert.Error(t, c.SetMood(12))
}

func TestSelectDateFlushesDiary(t *testing.T) {
	h := newHarness(t0)
	c := h.open(t, "2024-01-10")

	c.UpdateDiary("today's note")
	require.NoError(t, c.SelectDate("2024-01-09"))

	s := c.State()
	assert.Equal(t, "today's note", s.Mood["2024-01-10"].Diary)
	assert.Equal(t, "", s.DiaryDraft)
}

func TestCloseFlushesDiary(t *testing.T) {
	h := newHarness(t0)
	c := h.open(t, "2024-01-10")

	c.UpdateDiary("last words")
	c.Close()

	var mood models.MoodLog
	h.stored(t, "mood-u1", &mood)
	assert.Equal(t, "last words", mood["2024-01-10"].Diary)
}

func TestQuotaFailureKeepsMemoryState(t *testing.T) {
	h := newHarness(t0)
	c := h.open(t, "2024-01-10")

	_, _, err := c.AddHabit(NewHabit{Name: "Read"})
	require.NoError(t, err)

	h.store.Quota = 1
	habit, ok, err := c.AddHabit(NewHabit{Name: "Meditate"})
	assert.True(t, ok)
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)

	// In memory the habit exists; on disk it does not
	_, found := c.State().Habit(habit.ID)
	assert.True(t, found)

	var stored []models.Habit
	h.stored(t, "habits-u1", &stored)
	assert.Len(t, stored, 1)

	// The next successful save catches up
	h.store.Quota = 0
	_, err = c.Toggle(habit.ID)
	require.NoError(t, err)
	h.stored(t, "habits-u1", &stored)
	assert.Len(t, stored, 2)
}

func TestToastAutoDismiss(t *testing.T) {
	h := newHarness(t0)
	c := h.open(t, "2024-01-10")

	habit, _, _ := c.AddHabit(NewHabit{Name: "Read"})
	_, _, _ = c.AddHabit(NewHabit{Name: "Run"})
	_, _ = c.Delete(habit.ID)
	require.NotNil(t, c.State().Toast)

	h.clock.Advance(constants.ToastDuration)
	assert.Nil(t, c.State().Toast)
}

func TestUpdateSettings(t *testing.T) {
	h := newHarness(t0)
	c := h.open(t, "2024-01-10")

	settings := models.UserSettings{Theme: models.ThemeDark, AccentColor: models.AccentPink, EveningSummary: false}
	require.NoError(t, c.UpdateSettings(settings))

	var stored models.UserSettings
	h.stored(t, "settings-u1", &stored)
	assert.Equal(t, settings, stored)
	assert.Equal(t, settings, h.open(t, "").State().Settings)
}

func TestEveningSummary(t *testing.T) {
	h := newHarness(time.Date(2024, 1, 10, 19, 30, 0, 0, time.UTC))
	c := h.open(t, "")

	habit, _, _ := c.AddHabit(NewHabit{Name: "Read"})
	_, _, _ = c.AddHabit(NewHabit{Name: "Run"})
	_, _ = c.Toggle(habit.ID)

	fired, err := c.CheckEveningSummary()
	require.NoError(t, err)
	assert.False(t, fired, "before 20:00")

	h.clock.Set(time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC))
	fired, err = c.CheckEveningSummary()
	require.NoError(t, err)
	assert.True(t, fired)
	assert.Equal(t, []string{"You completed 1/2 habits today! 💪"}, h.recorder.Texts(notifier.KindEveningSummary))

	raw, err := h.store.Get("eveningSummary-u1-2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "shown", string(raw))

	// Once per date, even from a new session
	fired, _ = c.CheckEveningSummary()
	assert.False(t, fired)
	fired, _ = h.open(t, "").CheckEveningSummary()
	assert.False(t, fired)

	// Next evening fires again
	h.clock.Set(time.Date(2024, 1, 11, 21, 0, 0, 0, time.UTC))
	fired, _ = c.CheckEveningSummary()
	assert.True(t, fired)
}

func TestEveningSummaryDisabled(t *testing.T) {
	h := newHarness(time.Date(2024, 1, 10, 21, 0, 0, 0, time.UTC))
	c := h.open(t, "")
	require.NoError(t, c.UpdateSettings(models.UserSettings{
		Theme: models.ThemeLight, AccentColor: models.AccentPurple, EveningSummary: false,
	}))

	fired, err := c.CheckEveningSummary()
	require.NoError(t, err)
	assert.False(t, fired)
}
