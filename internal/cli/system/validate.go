package system

import (
	"fmt"

	"github.com/julianstephens/daymood/internal/cli"
	"github.com/julianstephens/daymood/internal/storage"
	"github.com/julianstephens/daymood/internal/utils"
	"github.com/julianstephens/daymood/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Repair stale streaks and duplicate ids."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	id, ok, err := ctx.RequireUser()
	if err != nil || !ok {
		return err
	}

	date := ctx.SelectedDate()
	if !utils.ValidateDate(date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	adapter := storage.NewAdapter(ctx.Store, id.UserID)
	snap, err := loadSnapshot(adapter, date)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	ctx.Printf("Validating data for %s (streaks as of %s)...\n", id.UserID, date)
	result := validation.New().Validate(snap)

	ctx.Println()
	ctx.Println(result.FormatReport())

	if !cmd.Fix || !result.HasConflicts() {
		return nil
	}

	fixed, actions := validation.AutoFix(result.Conflicts, snap)
	if len(actions) == 0 {
		ctx.Println("No conflicts could be fixed automatically.")
		return nil
	}
	if err := saveSnapshot(adapter, fixed); err != nil {
		return fmt.Errorf("failed to save fixes: %w", err)
	}

	ctx.Println("Applied fixes:")
	for _, action := range actions {
		ctx.Printf("  ✓ %s\n", action.Action)
	}

	remaining := validation.New().Validate(fixed)
	if remaining.HasConflicts() {
		ctx.Println()
		ctx.Println("Remaining conflicts need manual attention:")
		ctx.Println(remaining.FormatReport())
	}
	return nil
}
