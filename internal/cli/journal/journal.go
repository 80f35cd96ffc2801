package journal

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daymood/internal/cli"
	"github.com/julianstephens/daymood/internal/engine"
	"github.com/julianstephens/daymood/internal/models"
	"github.com/julianstephens/daymood/internal/utils"
)

type MoodCmd struct {
	Set  MoodSetCmd  `cmd:"" help:"Record the mood color for the selected date."`
	Show MoodShowCmd `cmd:"" help:"Show the mood and diary for the selected date." default:"1"`
}

type MoodSetCmd struct {
	Color int `arg:"" help:"Palette index, 0 (deep purple) to 9 (pale yellow)."`
}

func (c *MoodSetCmd) Run(ctx *cli.Context) error {
	if !models.ValidMoodIndex(c.Color) {
		return fmt.Errorf("mood color must be between 0 and %d, got %d", len(models.MoodPalette)-1, c.Color)
	}

	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	if err := ctrl.SetMood(c.Color); err != nil {
		ctx.WarnUnsaved(err)
	}

	state := ctrl.State()
	styles := cli.NewStyles(state.Settings)
	ctx.Printf("Mood for %s: %s %d\n", state.SelectedDate, styles.MoodSwatch(c.Color, true), c.Color)
	return nil
}

type MoodShowCmd struct{}

func (c *MoodShowCmd) Run(ctx *cli.Context) error {
	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	state := ctrl.State()
	styles := cli.NewStyles(state.Settings)

	ctx.Println(styles.Title.Render(utils.FormatDisplayDate(state.SelectedDate)))
	entry, found := state.CurrentMood()
	if !found {
		ctx.Println("No mood recorded.")
		return nil
	}
	ctx.Printf("Mood:  %s %d\n", styles.MoodSwatch(entry.Color, true), entry.Color)
	if entry.Diary != "" {
		ctx.Println("Diary:")
		ctx.Println(entry.Diary)
	}
	return nil
}

type DiaryCmd struct {
	Set  DiarySetCmd  `cmd:"" help:"Write the diary entry for the selected date."`
	List DiaryListCmd `cmd:"" help:"List diary entries for a week." default:"1"`
}

type DiarySetCmd struct {
	Text []string `arg:"" help:"Diary text."`
}

func (c *DiarySetCmd) Run(ctx *cli.Context) error {
	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}

	text := strings.Join(c.Text, " ")
	ctrl.UpdateDiary(text)
	// Close writes the debounced edit before the process exits
	ctrl.Close()

	ctx.Printf("Diary saved for %s.\n", ctrl.State().SelectedDate)
	return nil
}

type DiaryListCmd struct {
	Offset int `help:"Weeks back from the current week." default:"0"`
}

func (c *DiaryListCmd) Run(ctx *cli.Context) error {
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
	entries := engine.DiaryListing(state.Mood, days)

	ctx.Println(styles.Title.Render("📖 Diary: " + engine.WeekLabel(c.Offset, days)))
	if len(entries) == 0 {
		ctx.Println("No diary entries this week.")
		return nil
	}
	for _, e := range entries {
		ctx.Printf("%s %s  %s\n", styles.MoodSwatch(e.Color, true), utils.FormatDisplayDate(e.Date), e.Preview())
	}
	return nil
}
