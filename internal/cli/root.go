package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/identity"
	"github.com/julianstephens/daymood/internal/logger"
	"github.com/julianstephens/daymood/internal/notifier"
	"github.com/julianstephens/daymood/internal/scheduler"
	"github.com/julianstephens/daymood/internal/session"
	"github.com/julianstephens/daymood/internal/storage"
	"github.com/julianstephens/daymood/internal/utils"
)

type Context struct {
	Store    storage.Provider
	Resolver *identity.Resolver
	Clock    scheduler.Clock
	Location *time.Location
	// Date is the selected date; empty means today.
	Date string
	Out  io.Writer
}

// Stdout is where command output goes.
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes formatted command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Println writes a line of command output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Loc is the location "today" is computed in.
func (c *Context) Loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// SelectedDate is the --date value, or today in Loc.
func (c *Context) SelectedDate() string {
	if c.Date != "" {
		return c.Date
	}
	clock := c.Clock
	if clock == nil {
		clock = scheduler.SystemClock{}
	}
	return utils.DateOf(clock.Now().In(c.Loc()))
}

func (c *Context) resolver() *identity.Resolver {
	if c.Resolver == nil {
		c.Resolver = identity.NewResolver("")
	}
	return c.Resolver
}

// IdentityStore is where sign-in state is kept.
func (c *Context) IdentityStore() identity.Store {
	if r := c.resolver(); r.Store != nil {
		return r.Store
	}
	return identity.KeyringStore{}
}

// Identity resolves the current user without requiring one.
func (c *Context) Identity() (identity.Identity, error) {
	return c.resolver().Resolve()
}

// RequireUser resolves the signed-in user. When there is none it prints the
// landing text and returns ok=false with a nil error.
func (c *Context) RequireUser() (identity.Identity, bool, error) {
	id, err := c.resolver().Require()
	if errors.Is(err, identity.ErrSignedOut) {
		c.Println(constants.LandingMessage)
		return id, false, nil
	}
	if err != nil {
		return id, false, err
	}
	return id, true, nil
}

// Session opens the signed-in user's session, with the same signed-out
// handling as RequireUser.
func (c *Context) Session() (ctrl *session.Controller, ok bool, err error) {
	id, ok, err := c.RequireUser()
	if err != nil || !ok {
		return nil, false, err
	}

	ctrl, err = session.Open(id.UserID, session.Options{
		Provider:     c.Store,
		Clock:        c.Clock,
		Location:     c.Loc(),
		SelectedDate: c.Date,
	})
	if err != nil {
		return nil, false, err
	}

	styles := NewStyles(ctrl.State().Settings)
	ctrl.SetNotifier(notifier.Multi{
		notifier.LogNotifier{},
		notifier.New(c.Stdout(), styles.Accent),
	})

	logger.Debug("Session ready", "user", id.UserID, "source", id.Source)
	return ctrl, true, nil
}

// WarnUnsaved reports a persistence failure without failing the command.
// The change was applied but may be lost when the process exits.
func (c *Context) WarnUnsaved(err error) {
	if err == nil {
		return
	}
	logger.Warn("Change not persisted", "error", err)
	c.Printf("⚠ Change not saved: %v\n", err)
}
