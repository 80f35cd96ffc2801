package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/daymood/internal/constants"
)

const (
	// EnvDBConnection supplies a postgres connection string when --config=keyring
	EnvDBConnection = "DAYMOOD_DB_CONNECTION"
	// KeyringConfig selects the connection string stored in the OS keyring
	KeyringConfig = "keyring"
)

// Backend is the storage kind selected by --config.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendJSON     Backend = "json"
	BackendPostgres Backend = "postgres"
	BackendKeyring  Backend = "keyring"
)

// DetectBackend picks the storage backend for a --config value.
func DetectBackend(config string) Backend {
	switch {
	case config == KeyringConfig:
		return BackendKeyring
	case strings.HasPrefix(config, "postgres://"), strings.HasPrefix(config, "postgresql://"):
		return BackendPostgres
	case strings.EqualFold(filepath.Ext(config), ".json"):
		return BackendJSON
	default:
		return BackendSQLite
	}
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Dir is the directory that holds logs and the user .env file.
func Dir() (string, error) {
	return ExpandPath(filepath.Dir(constants.DefaultConfigPath))
}

// DataDir is where logs go for a given --config value. File backends keep
// logs next to their data; remote backends use Dir.
func DataDir(config string) (string, error) {
	switch DetectBackend(config) {
	case BackendSQLite, BackendJSON:
		path, err := ExpandPath(config)
		if err != nil {
			return "", err
		}
		return filepath.Dir(path), nil
	default:
		return Dir()
	}
}

// EnvPaths lists the .env files read at startup, in priority order.
func EnvPaths() []string {
	paths := []string{constants.EnvFileName}
	if dir, err := Dir(); err == nil {
		paths = append(paths, filepath.Join(dir, constants.EnvFileName))
	}
	return paths
}

// LoadEnv loads each existing file in paths into the process environment.
// Variables already set are never overridden, and earlier files win over
// later ones. Missing files are skipped. It returns the files it loaded.
func LoadEnv(paths ...string) ([]string, error) {
	var loaded []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return loaded, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, fmt.Errorf("failed to load %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}
