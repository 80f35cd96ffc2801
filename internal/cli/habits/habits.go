package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daymood/internal/cli"
	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/engine"
	"github.com/julianstephens/daymood/internal/models"
	"github.com/julianstephens/daymood/internal/session"
	"github.com/julianstephens/daymood/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits for the selected date." default:"1"`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a habit done or not done for the selected date."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit. Undo is possible for a few seconds."`
	Undo   HabitUndoCmd   `cmd:"" help:"Restore the most recently deleted habit."`
	Top    HabitTopCmd    `cmd:"" help:"Show the longest current streaks."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Name of the habit. Prompts interactively when omitted."`
	Description string `help:"Optional description."`
	Category    string `help:"Category (Health, Productivity, Mindfulness, Social, Learning, Other)." default:"Other"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if c.Name == "" {
		if err := c.prompt(); err != nil {
			return err
		}
	}

	category, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}

	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	habit, added, err := ctrl.AddHabit(session.NewHabit{
		Name:        c.Name,
		Description: c.Description,
		Category:    category,
	})
	if !added {
		ctx.Println("Habit name cannot be empty; nothing added.")
		return nil
	}
	ctx.WarnUnsaved(err)

	ctx.Printf("Added habit: %s [%s] (ID: %s)\n", habit.Name, habit.Category, cli.ShortID(habit.ID))
	return nil
}

func (c *HabitAddCmd) prompt() error {
	options := make([]huh.Option[string], 0, len(models.Categories()))
	for _, cat := range models.Categories() {
		options = append(options, huh.NewOption(cat.String(), cat.String()))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&c.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&c.Description),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&c.Category),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return fmt.Errorf("habit form: %w", err)
	}
	return nil
}

type HabitListCmd struct {
	Category string `help:"Only show habits in this category."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	filter := models.Category("")
	if c.Category != "" {
		cat, err := models.ParseCategory(c.Category)
		if err != nil {
			return err
		}
		filter = cat
	}

	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	state := ctrl.State()
	styles := cli.NewStyles(state.Settings)
	stats := engine.DailyStatsFor(state.Habits, state.SelectedDate)

	ctx.Println(styles.Title.Render(fmt.Sprintf("Habits for %s", utils.FormatDisplayDate(state.SelectedDate))))
	ctx.Printf("%s %d/%d (%d%%)\n", styles.ProgressBar(stats.Percentage), stats.Completed, stats.Total, stats.Percentage)
	ctx.Println(styles.Subtle.Render(engine.SummaryMessage(stats)))
	ctx.Println()

	if len(state.Habits) == 0 {
		ctx.Println("No habits yet. Add one with 'daymood habit add'.")
		return nil
	}

	shown := engine.FilterByCategory(state.Habits, filter)
	if len(shown) == 0 {
		ctx.Printf("No habits in category %s.\n", filter)
		return nil
	}

	// Positions follow the unfiltered list so they can be used with toggle
	position := make(map[string]int, len(state.Habits))
	for i, h := range state.Habits {
		position[h.ID] = i + 1
	}

	for _, h := range shown {
		line := fmt.Sprintf("%2d. %s %s", position[h.ID], styles.Check(h.Completed(state.SelectedDate)), styles.Text.Render(h.Name))
		if h.Streak > 0 {
			line += " " + styles.Streak.Render(fmt.Sprintf("🔥 %d", h.Streak))
		}
		line += styles.Subtle.Render(fmt.Sprintf("  [%s] %s", h.Category, cli.ShortID(h.ID)))
		ctx.Println(line)
		if h.Description != "" {
			ctx.Println("      " + styles.Subtle.Render(h.Description))
		}
	}
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit position, ID, ID prefix or name."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	habit, err := cli.ResolveHabit(ctrl.State().Habits, c.Habit)
	if err != nil {
		return err
	}

	if _, err := ctrl.Toggle(habit.ID); err != nil {
		ctx.WarnUnsaved(err)
	}

	state := ctrl.State()
	updated, _ := state.Habit(habit.ID)
	if updated.Completed(state.SelectedDate) {
		ctx.Printf("✓ %s done for %s (streak: %d)\n", updated.Name, state.SelectedDate, updated.Streak)
	} else {
		ctx.Printf("✗ %s not done for %s (streak: %d)\n", updated.Name, state.SelectedDate, updated.Streak)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit position, ID, ID prefix or name."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	habit, err := cli.ResolveHabit(ctrl.State().Habits, c.Habit)
	if err != nil {
		return err
	}

	if _, err := ctrl.Delete(habit.ID); err != nil {
		ctx.WarnUnsaved(err)
	}
	ctx.Printf("Deleted habit: %s. Run 'daymood habit undo' within %s to restore it.\n",
		habit.Name, constants.UndoGraceWindow)
	return nil
}

type HabitUndoCmd struct{}

func (c *HabitUndoCmd) Run(ctx *cli.Context) error {
	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	pending := ctrl.State().Undo
	restored, err := ctrl.Undo()
	if !restored {
		ctx.Println("Nothing to undo.")
		return nil
	}
	ctx.WarnUnsaved(err)
	ctx.Printf("Restored habit: %s\n", pending.Habit.Name)
	return nil
}

type HabitTopCmd struct {
	Limit int `help:"Number of habits to show." default:"5"`
}

func (c *HabitTopCmd) Run(ctx *cli.Context) error {
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}

	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	state := ctrl.State()
	styles := cli.NewStyles(state.Settings)

	top := engine.TopStreaks(state.Habits, c.Limit)
	if len(top) == 0 {
		ctx.Println("No habits yet.")
		return nil
	}

	ctx.Println(styles.Title.Render("🔥 Streak Leaderboard"))
	for i, h := range top {
		ctx.Printf("%d. %-24s %s\n", i+1, h.Name, styles.Streak.Render(fmt.Sprintf("%d days", h.Streak)))
	}
	return nil
}
