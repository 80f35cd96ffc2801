package system

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daymood/internal/cli"
	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/identity"
	"github.com/julianstephens/daymood/internal/keyring"
	"github.com/julianstephens/daymood/internal/storage"
	"github.com/julianstephens/daymood/internal/utils"
	"github.com/julianstephens/daymood/internal/validation"
)

// versioned is implemented by stores with a migrated schema.
type versioned interface {
	SchemaVersion() (current, latest int, err error)
}

type sqlStore interface {
	GetDB() *sql.DB
}

type DoctorCmd struct{}

type checkResult int

const (
	checkOK checkResult = iota
	checkFail
	checkWarn
	checkSkip
)

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, result checkResult, detail string) {
		switch result {
		case checkOK:
			ctx.Printf("✓ %s: OK\n", name)
		case checkFail:
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %s\n", detail)
			hasError = true
		case checkWarn:
			ctx.Printf("⚠ %s: WARNING\n", name)
			ctx.Printf("   %s\n", detail)
		case checkSkip:
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, detail)
		}
	}
	run := func(name string, reachable bool, check func() error) {
		if !reachable {
			report(name, checkSkip, "database not reachable")
			return
		}
		if err := check(); err != nil {
			report(name, checkFail, err.Error())
			return
		}
		report(name, checkOK, "")
	}

	dbReachable := true
	if err := checkDBReachable(ctx.Store); err != nil {
		report("Database reachable", checkFail, err.Error())
		dbReachable = false
	} else {
		report("Database reachable", checkOK, "")
	}

	run("Schema version", dbReachable, func() error { return checkSchemaVersion(ctx.Store) })
	run("Migrations complete", dbReachable, func() error { return checkMigrationsComplete(ctx.Store) })
	run("Stored data decodes", dbReachable, func() error { return checkBlobsDecode(ctx.Store) })

	if err := checkKeyring(); err != nil {
		report("OS keyring", checkWarn, err.Error())
	} else {
		report("OS keyring", checkOK, "")
	}

	run("Clock/timezone", true, func() error { return checkClockTimezone(ctx) })

	id, err := ctx.Identity()
	switch {
	case err != nil:
		report("Signed-in user", checkFail, err.Error())
	case id.Status != identity.StatusSignedIn:
		report("Signed-in user", checkWarn, "nobody is signed in - run 'daymood signin <user-id>'")
	default:
		report("Signed-in user", checkOK, "")
	}

	if id.Status == identity.StatusSignedIn {
		run("Data validation", dbReachable, func() error { return checkValidation(ctx, id.UserID) })
	} else {
		report("Data validation", checkSkip, "no signed-in user")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(store storage.Provider) error {
	if err := store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if s, ok := store.(sqlStore); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(store storage.Provider) error {
	s, ok := store.(versioned)
	if !ok {
		// File and memory stores have no schema
		return nil
	}

	current, latest, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(store storage.Provider) error {
	s, ok := store.(versioned)
	if !ok {
		return nil
	}

	current, latest, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkBlobsDecode verifies every stored collection is JSON. Evening summary
// markers are plain text and skipped.
func checkBlobsDecode(store storage.Provider) error {
	keys, err := store.Keys("")
	if err != nil {
		return fmt.Errorf("failed to list stored keys: %w", err)
	}

	var bad []string
	for _, key := range keys {
		if strings.HasPrefix(key, constants.EveningSummaryKeyPrefix+"-") {
			continue
		}
		value, err := store.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !json.Valid(value) {
			bad = append(bad, key)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("found %d malformed entries (they load as empty defaults): %s", len(bad), strings.Join(bad, ", "))
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; use --user or %s to choose a user", identity.EnvUser)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if date := ctx.SelectedDate(); !utils.ValidateDate(date) {
		return fmt.Errorf("invalid selected date %q, expected YYYY-MM-DD", date)
	}
	return nil
}

// checkValidation fails on conflicts that persist across sessions. Stale
// streaks are skipped because every session recomputes them on open.
func checkValidation(ctx *cli.Context, userID string) error {
	snap, err := loadSnapshot(storage.NewAdapter(ctx.Store, userID), ctx.SelectedDate())
	if err != nil {
		return err
	}

	var problems []string
	for _, c := range validation.New().Validate(snap).Conflicts {
		if c.Type == validation.ConflictStaleStreak {
			continue
		}
		problems = append(problems, c.Description)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d conflict(s): %s (run 'daymood validate --fix')", len(problems), strings.Join(problems, "; "))
	}
	return nil
}
