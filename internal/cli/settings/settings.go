package settings

import (
	"strconv"
	"strings"

	"github.com/julianstephens/daymood/internal/cli"
	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Theme          string `help:"Color theme (light or dark)."`
	Accent         string `help:"Accent color (Purple, Teal, Orange, Green, Pink)."`
	EveningSummary *bool  `help:"Enable or disable the evening summary." negatable:""`
}

// changes collects the flags that were set, keyed like the stored settings.
func (c *SettingsCmd) changes() map[string]string {
	changes := make(map[string]string)
	if c.Theme != "" {
		changes[constants.SettingTheme] = c.Theme
	}
	if c.Accent != "" {
		changes[constants.SettingAccentColor] = c.Accent
	}
	if c.EveningSummary != nil {
		changes[constants.SettingEveningSummary] = strconv.FormatBool(*c.EveningSummary)
	}
	return changes
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	changes := c.changes()
	// Parse before opening the session so bad values never touch storage
	if _, err := models.MapToSettings(changes); err != nil {
		return err
	}

	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	current := models.SettingsToMap(ctrl.State().Settings)

	if c.List {
		styles := cli.NewStyles(ctrl.State().Settings)
		ctx.Println("Current Settings:")
		ctx.Printf("  Theme:           %s\n", current[constants.SettingTheme])
		ctx.Printf("  Accent Color:    %s\n", styles.Title.Render(current[constants.SettingAccentColor]))
		ctx.Printf("  Evening Summary: %s\n", current[constants.SettingEveningSummary])
		ctx.Printf("\nAvailable accents: %s\n", accentNames())
		return nil
	}

	if len(changes) == 0 {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	for key, value := range changes {
		current[key] = value
	}
	settings, err := models.MapToSettings(current)
	if err != nil {
		return err
	}

	if err := ctrl.UpdateSettings(settings); err != nil {
		ctx.WarnUnsaved(err)
		return nil
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

func accentNames() string {
	names := make([]string, 0, len(models.Accents()))
	for _, a := range models.Accents() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}
