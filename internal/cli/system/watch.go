package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/daymood/internal/cli"
	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/logger"
)

// WatchCmd stays running and shows the evening summary once it is due.
type WatchCmd struct {
	Once bool   `help:"Run a single check and exit."`
	Spec string `help:"Cron schedule for the checks." default:"${evening_cron}"`
}

func (cmd *WatchCmd) Run(ctx *cli.Context) error {
	if _, ok, err := ctx.RequireUser(); err != nil || !ok {
		return err
	}

	if err := cmd.check(ctx); err != nil {
		return err
	}
	if cmd.Once {
		return nil
	}

	spec := cmd.Spec
	if spec == "" {
		spec = constants.EveningSummaryCronSpec
	}

	c := cron.New(cron.WithLocation(ctx.Loc()))
	if _, err := c.AddFunc(spec, func() {
		if err := cmd.check(ctx); err != nil {
			logger.Error("Evening summary check failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c.Start()
	logger.Info("Watching for evening summary", "schedule", spec)
	ctx.Printf("Watching for the evening summary (%s). Press Ctrl+C to stop.\n", spec)

	<-sigCtx.Done()
	<-c.Stop().Done()
	return nil
}

// check opens a fresh session so edits from other invocations are counted.
func (cmd *WatchCmd) check(ctx *cli.Context) error {
	ctrl, ok, err := ctx.Session()
	if err != nil || !ok {
		return err
	}
	defer ctrl.Close()

	fired, err := ctrl.CheckEveningSummary()
	if err != nil {
		logger.Warn("Evening summary marker not saved", "error", err)
	}
	logger.Debug("Checked evening summary", "fired", fired)
	return nil
}
