package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/daymood/internal/cli"
	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/identity"
	"github.com/julianstephens/daymood/internal/models"
	"github.com/julianstephens/daymood/internal/scheduler"
	"github.com/julianstephens/daymood/internal/storage"
)

func setupTestContext(t *testing.T) (*cli.Context, *storage.MemoryStore, *bytes.Buffer) {
	store := storage.NewMemoryStore()
	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:    store,
		Resolver: &identity.Resolver{Override: "alice", Getenv: func(string) string { return "" }},
		Clock:    scheduler.NewManualClock(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)),
		Location: time.UTC,
		Out:      out,
	}
	return ctx, store, out
}

func storedSettings(t *testing.T, store *storage.MemoryStore) models.UserSettings {
	t.Helper()
	raw, err := store.Get(storage.Key(constants.CollectionSettings, "alice"))
	if err != nil {
		t.Fatalf("failed to read settings: %v", err)
	}
	settings := models.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		t.Fatalf("failed to decode settings: %v", err)
	}
	return settings
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, _, out := setupTestContext(t)

	cmd := &SettingsCmd{
		List: true,
	}

	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
	for _, want := range []string{"Theme:           light", "Purple", "Evening Summary: true"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, store, out := setupTestContext(t)

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("No changes specified")) {
		t.Errorf("expected no-change hint, got %q", out.String())
	}
	if _, err := store.Get(storage.Key(constants.CollectionSettings, "alice")); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected settings to stay unsaved, got %v", err)
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	off := false

	tests := []struct {
		name string
		cmd  SettingsCmd
		want models.UserSettings
	}{
		{
			name: "theme",
			cmd:  SettingsCmd{Theme: "Dark"},
			want: models.UserSettings{Theme: models.ThemeDark, AccentColor: models.AccentPurple, EveningSummary: true},
		},
		{
			name: "accent",
			cmd:  SettingsCmd{Accent: "teal"},
			want: models.UserSettings{Theme: models.ThemeLight, AccentColor: models.AccentTeal, EveningSummary: true},
		},
		{
			name: "evening summary",
			cmd:  SettingsCmd{EveningSummary: &off},
			want: models.UserSettings{Theme: models.ThemeLight, AccentColor: models.AccentPurple, EveningSummary: false},
		},
		{
			name: "all at once",
			cmd:  SettingsCmd{Theme: "dark", Accent: "Pink", EveningSummary: &off},
			want: models.UserSettings{Theme: models.ThemeDark, AccentColor: models.AccentPink, EveningSummary: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, store, _ := setupTestContext(t)

			if err := tt.cmd.Run(ctx); err != nil {
				t.Fatalf("settings update failed: %v", err)
			}
			if got := storedSettings(t, store); got != tt.want {
				t.Errorf("expected settings %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestSettingsCmd_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{name: "theme", cmd: SettingsCmd{Theme: "sepia"}},
		{name: "accent", cmd: SettingsCmd{Accent: "Blue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, store, _ := setupTestContext(t)

			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error for invalid value, got nil")
			}
			keys, _ := store.Keys("")
			if len(keys) != 0 {
				t.Errorf("expected nothing stored, got %v", keys)
			}
		})
	}
}

func TestSettingsCmd_UpdateKeepsOtherSettings(t *testing.T) {
	ctx, store, out := setupTestContext(t)

	seeded := models.UserSettings{Theme: models.ThemeDark, AccentColor: models.AccentGreen, EveningSummary: false}
	if err := storage.NewAdapter(store, "alice").Save(constants.CollectionSettings, seeded); err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	if err := (&SettingsCmd{Accent: "orange"}).Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}
	want := models.UserSettings{Theme: models.ThemeDark, AccentColor: models.AccentOrange, EveningSummary: false}
	if got := storedSettings(t, store); got != want {
		t.Errorf("expected settings %+v, got %+v", want, got)
	}

	out.Reset()
	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	for _, want := range []string{"Theme:           dark", "Orange", "Evening Summary: false"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}
