package insights

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/daymood/internal/cli"
	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/engine"
	"github.com/julianstephens/daymood/internal/utils"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	state := ctrl.State()
	styles := cli.NewStyles(state.Settings)
	stats := engine.DailyStatsFor(state.Habits, state.SelectedDate)

	ctx.Println(styles.Title.Render("Today's Progress: " + utils.FormatDisplayDate(state.SelectedDate)))
	ctx.Printf("Completed:  %d/%d\n", stats.Completed, stats.Total)
	ctx.Printf("Progress:   %s %d%%\n", styles.ProgressBar(stats.Percentage), stats.Percentage)
	ctx.Println(engine.SummaryMessage(stats))

	if entry, found := state.CurrentMood(); found {
		ctx.Printf("Mood:       %s %d\n", styles.MoodSwatch(entry.Color, true), entry.Color)
	}
	ctx.Printf("Achievements unlocked: %d\n", len(state.Achievements))
	return nil
}

type WeekCmd struct {
	Offset int `help:"Weeks back from the current week." default:"0"`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	days, err := engine.WeekWindow(ctrl.Today(), c.Offset)
	if err != nil {
		return err
	}

	state := ctrl.State()
	styles := cli.NewStyles(state.Settings)

	ctx.Println(styles.Title.Render("📊 " + engine.WeekLabel(c.Offset, days)))
	ctx.Println()

	ctx.Println(styles.Text.Render("Completion"))
	for _, rate := range engine.WeeklyCompletion(state.Habits, days) {
		ctx.Printf("%s %s %3d%% (%d/%d)\n",
			weekday(rate.Date), styles.ProgressBar(rate.Percentage), rate.Percentage, rate.Completed, rate.Total)
	}
	ctx.Println()

	ctx.Println(styles.Text.Render("Mood"))
	var labels, swatches []string
	for _, day := range engine.MoodStrip(state.Mood, days) {
		labels = append(labels, weekday(day.Date)[:2])
		swatches = append(swatches, styles.MoodSwatch(day.Color, day.HasMood))
	}
	ctx.Println(strings.Join(labels, " "))
	ctx.Println(strings.Join(swatches, " "))

	entries := engine.DiaryListing(state.Mood, days)
	if len(entries) > 0 {
		ctx.Println()
		ctx.Println(styles.Text.Render("Diary"))
		for _, e := range entries {
			ctx.Printf("%s %s  %s\n", styles.MoodSwatch(e.Color, true), utils.FormatDisplayDate(e.Date), e.Preview())
		}
	}
	return nil
}

func weekday(date string) string {
	t, err := utils.ParseDate(date)
	if err != nil {
		return "???"
	}
	return t.Format("Mon")
}

type AchievementsCmd struct {
	All bool `help:"Show every unlocked achievement instead of the most recent."`
}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	state := ctrl.State()
	styles := cli.NewStyles(state.Settings)

	limit := constants.RecentAchievements
	if c.All {
		limit = len(state.Achievements)
	}

	ctx.Println(styles.Title.Render(fmt.Sprintf("🏅 Achievements (%d unlocked)", len(state.Achievements))))
	if len(state.Achievements) == 0 {
		ctx.Println("None yet. Build a 3-day streak to earn your first!")
		return nil
	}
	for _, a := range state.Achievements.Recent(limit) {
		ctx.Printf("%s %s - %s %s\n", a.Icon, styles.Text.Render(a.Title), a.Description,
			styles.Subtle.Render(a.UnlockedAt.In(ctx.Loc()).Format("Jan 2, 2006")))
	}
	return nil
}

type ExportCmd struct {
	Dir    string `help:"Directory to write the report to." default:"." type:"path"`
	Stdout bool   `help:"Print the report instead of writing a file."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	state := ctrl.State()
	report := engine.Report(state.SelectedDate, state.Habits, state.Mood)
	if c.Stdout {
		ctx.Printf("%s", report)
		return nil
	}

	path := filepath.Join(c.Dir, engine.ReportFilename(state.SelectedDate))
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	ctx.Printf("Report written to %s\n", path)
	return nil
}
