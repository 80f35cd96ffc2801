package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/engine"
	"github.com/julianstephens/daymood/internal/logger"
	"github.com/julianstephens/daymood/internal/models"
	"github.com/julianstephens/daymood/internal/notifier"
	"github.com/julianstephens/daymood/internal/scheduler"
	"github.com/julianstephens/daymood/internal/storage"
	"github.com/julianstephens/daymood/internal/utils"
)

// ErrNoUser is returned when a session is opened without a user id.
var ErrNoUser = errors.New("no signed-in user")

// Options configures a Controller. Only Provider is required.
type Options struct {
	Provider storage.Provider
	Clock    scheduler.Clock
	Location *time.Location
	Notifier notifier.Notifier
	// NewID generates habit ids. Defaults to random UUIDs.
	NewID func() string
	// SelectedDate overrides the initial date, which is otherwise today.
	SelectedDate string
}

// Controller applies user actions to a session State, persists the result
// and drives the session's timers.
type Controller struct {
	mu      sync.Mutex
	state   State
	adapter *storage.Adapter
	tasks   *scheduler.Scheduler
	clock   scheduler.Clock
	loc     *time.Location
	notify  notifier.Notifier
	newID   func() string
}

// Open loads a user's collections. Missing or malformed blobs fall back to
// their defaults; Open only fails on bad options.
func Open(userID string, opts Options) (*Controller, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	if opts.Provider == nil {
		return nil, errors.New("session requires a storage provider")
	}

	c := &Controller{
		adapter: storage.NewAdapter(opts.Provider, userID),
		clock:   opts.Clock,
		loc:     opts.Location,
		notify:  opts.Notifier,
		newID:   opts.NewID,
	}
	if c.clock == nil {
		c.clock = scheduler.SystemClock{}
	}
	if c.loc == nil {
		c.loc = time.Local
	}
	if c.notify == nil {
		c.notify = notifier.LogNotifier{}
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	c.tasks = scheduler.New(c.clock)

	date := opts.SelectedDate
	if date == "" {
		date = c.today()
	}
	if !utils.ValidateDate(date) {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	state := NewState(userID, date)
	c.load(constants.CollectionHabits, &state.Habits, func() { state.Habits = []models.Habit{} })
	c.load(constants.CollectionMood, &state.Mood, func() { state.Mood = models.MoodLog{} })
	c.load(constants.CollectionAchievements, &state.Achievements, func() { state.Achievements = models.Achievements{} })

	settings := models.DefaultSettings()
	c.load(constants.CollectionSettings, &settings, func() { settings = models.DefaultSettings() })
	state.Settings = settings

	var undo UndoBuffer
	if c.load(constants.CollectionUndo, &undo, func() {}) {
		if undo.Expired(c.clock.Now()) {
			if err := c.adapter.Remove(constants.CollectionUndo); err != nil {
				logger.Warn("Failed to clear expired undo buffer", "error", err)
			}
		} else {
			state.Undo = &undo
			c.scheduleUndoExpiry(undo.ExpiresAt)
		}
	}

	// Null blobs decode to nil collections
	if state.Habits == nil {
		state.Habits = []models.Habit{}
	}
	if state.Mood == nil {
		state.Mood = models.MoodLog{}
	}
	if state.Achievements == nil {
		state.Achievements = models.Achievements{}
	}

	state, _ = SelectDate(state, date)
	c.state = state

	logger.Debug("Opened session", "user", userID, "date", date, "habits", len(state.Habits))
	return c, nil
}

// load reads one collection, running reset when the stored value is unusable.
func (c *Controller) load(collection constants.Collection, dst any, reset func()) bool {
	found, err := c.adapter.Load(collection, dst)
	if err != nil {
		logger.Warn("Falling back to default", "collection", collection, "error", err)
		reset()
		return false
	}
	return found
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// SetNotifier swaps the notification sink, e.g. once settings are known.
func (c *Controller) SetNotifier(n notifier.Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n == nil {
		n = notifier.LogNotifier{}
	}
	c.notify = n
}

// Today is the current calendar date in the session's location.
func (c *Controller) Today() string {
	return c.today()
}

func (c *Controller) today() string {
	return utils.DateOf(c.clock.Now().In(c.loc))
}

// SelectDate moves the session to another date. A pending diary edit is
// written to the date it was typed for first.
func (c *Controller) SelectDate(date string) error {
	c.tasks.Flush(constants.TaskDiary)

	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := SelectDate(c.state, date)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// AddHabit creates a habit. ok is false when the name is blank. err reports a
// persistence failure; the habit stays in the session either way.
func (c *Controller) AddHabit(in NewHabit) (habit models.Habit, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, habit, ok := AddHabit(c.state, in, c.newID(), c.clock.Now())
	if !ok {
		logger.Debug("Refused habit with blank name")
		return models.Habit{}, false, nil
	}
	c.state = next

	err = c.saveHabits()
	c.evaluateAchievements()
	logger.Info("Added habit", "id", habit.ID, "name", habit.Name, "category", habit.Category)
	return habit, true, err
}

// Toggle flips the habit's completion for the selected date.
func (c *Controller) Toggle(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, ok := ToggleCompletion(c.state, id)
	if !ok {
		return false, nil
	}
	c.state = next

	err := c.saveHabits()
	c.evaluateAchievements()
	return true, err
}

// Delete removes a habit and opens the undo grace window.
func (c *Controller) Delete(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(constants.UndoGraceWindow)
	next, ok := DeleteHabit(c.state, id, expiresAt)
	if !ok {
		return false, nil
	}
	c.state = next

	err := c.saveHabits()
	if undoErr := c.adapter.Save(constants.CollectionUndo, c.state.Undo); undoErr != nil && err == nil {
		err = undoErr
	}
	c.scheduleUndoExpiry(expiresAt)
	c.showToast(constants.ToastHabitDeleted)
	c.evaluateAchievements()
	return true, err
}

// Undo restores the most recently deleted habit if the grace window is open.
func (c *Controller) Undo() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hadBuffer := c.state.Undo != nil
	next, ok := UndoDelete(c.state, c.clock.Now())
	c.state = next
	if hadBuffer {
		c.tasks.Cancel(constants.TaskUndo)
		if err := c.adapter.Remove(constants.CollectionUndo); err != nil {
			logger.Warn("Failed to clear undo buffer", "error", err)
		}
	}
	if !ok {
		return false, nil
	}

	err := c.saveHabits()
	c.showToast(constants.ToastHabitRestored)
	c.evaluateAchievements()
	return true, err
}

// SetMood records the mood color for the selected date along with the diary
// draft, which makes any pending diary write redundant.
func (c *Controller) SetMood(color int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := SetMood(c.state, color)
	if err != nil {
		return err
	}
	c.tasks.Cancel(constants.TaskDiary)
	c.state = next
	return c.adapter.Save(constants.CollectionMood, c.state.Mood)
}

// UpdateDiary shows text immediately and persists it once no further edit
// arrives within the debounce period.
func (c *Controller) UpdateDiary(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = SetDiaryDraft(c.state, text)
	date := c.state.SelectedDate
	c.tasks.Schedule(constants.TaskDiary, constants.DiaryDebounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		c.state = ApplyDiary(c.state, date, text)
		if err := c.adapter.Save(constants.CollectionMood, c.state.Mood); err == nil {
			logger.Debug("Saved diary", "date", date, "length", len(text))
		}
	})
}

// DiaryPending reports whether a diary edit is waiting to be written.
func (c *Controller) DiaryPending() bool {
	return c.tasks.Pending(constants.TaskDiary)
}

// UpdateSettings replaces and persists the settings.
func (c *Controller) UpdateSettings(settings models.UserSettings) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = UpdateSettings(c.state, settings)
	return c.adapter.Save(constants.CollectionSettings, c.state.Settings)
}

// CheckEveningSummary shows today's completion summary once per date when the
// setting is on and the local hour is 20 or later. It reports whether the
// summary fired.
func (c *Controller) CheckEveningSummary() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now().In(c.loc)
	today := utils.DateOf(now)
	if !engine.EveningSummaryDue(now, c.state.Settings, c.adapter.Marked(today)) {
		return false, nil
	}

	stats := engine.DailyStatsFor(c.state.Habits, today)
	c.send(notifier.Notification{
		Kind:     notifier.KindEveningSummary,
		Text:     engine.EveningSummaryMessage(stats),
		Duration: constants.ToastDuration,
	})
	return true, c.adapter.Mark(today)
}

// Close writes any pending diary edit and cancels the session timers.
func (c *Controller) Close() {
	c.tasks.Flush(constants.TaskDiary)
	c.tasks.Stop()
}

func (c *Controller) saveHabits() error {
	return c.adapter.Save(constants.CollectionHabits, c.state.Habits)
}

// evaluateAchievements must be called with c.mu held.
func (c *Controller) evaluateAchievements() {
	eval := engine.EvaluateAchievements(c.state.Achievements, c.state.Habits, c.state.SelectedDate, c.clock.Now())
	if !eval.Any() {
		return
	}
	c.state = ApplyAchievements(c.state, eval)
	if err := c.adapter.Save(constants.CollectionAchievements, c.state.Achievements); err != nil {
		logger.Warn("Achievements kept in memory only", "error", err)
	}

	for _, a := range eval.Unlocked {
		logger.Info("Unlocked achievement", "id", a.ID)
	}
	c.showToast(fmt.Sprintf(constants.ToastAchievementUnlocked, eval.Unlocked[0].Title))

	if eval.PerfectDay {
		c.send(notifier.Notification{
			Kind:     notifier.KindCelebration,
			Text:     constants.ToastCelebration,
			Duration: constants.CelebrationDuration,
		})
		c.tasks.Schedule(constants.TaskCelebration, constants.CelebrationDuration, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.state = EndCelebration(c.state)
		})
	}
}

// showToast must be called with c.mu held.
func (c *Controller) showToast(text string) {
	c.state = ShowToast(c.state, text, c.clock.Now().Add(constants.ToastDuration))
	c.send(notifier.Notification{Kind: notifier.KindToast, Text: text, Duration: constants.ToastDuration})
	c.tasks.Schedule(constants.TaskToast, constants.ToastDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.state = DismissToast(c.state)
	})
}

func (c *Controller) scheduleUndoExpiry(expiresAt time.Time) {
	delay := expiresAt.Sub(c.clock.Now())
	c.tasks.Schedule(constants.TaskUndo, delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		next, expired := ExpireUndo(c.state, c.clock.Now())
		if !expired {
			return
		}
		c.state = next
		if err := c.adapter.Remove(constants.CollectionUndo); err != nil {
			logger.Warn("Failed to clear expired undo buffer", "error", err)
		}
	})
}

func (c *Controller) send(n notifier.Notification) {
	if err := c.notify.Notify(n); err != nil {
		logger.Warn("Failed to deliver notification", "kind", n.Kind, "error", err)
	}
}
