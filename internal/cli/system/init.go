package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daymood/internal/cli"
	"github.com/julianstephens/daymood/internal/config"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to release the file
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized daymood storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	return nil
}

// copyData copies every stored blob from source into the destination store.
func (c *InitCmd) copyData(ctx *cli.Context, source string) error {
	if config.DetectBackend(source) == config.BackendKeyring {
		return fmt.Errorf("source must be a database path or connection string")
	}
	sourceStore, err := cli.OpenProvider(source)
	if err != nil {
		return err
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	keys, err := sourceStore.Keys("")
	if err != nil {
		return fmt.Errorf("failed to list source entries: %w", err)
	}
	for _, key := range keys {
		value, err := sourceStore.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if err := ctx.Store.Put(key, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	ctx.Printf("    Copied %d entries\n", len(keys))

	return nil
}
