package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/daymood/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "daymood.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitCreatesKVTable(t *testing.T) {
	store := setupTestStore(t)

	for _, table := range []string{"kv", "schema_version"} {
		var count int
		row := store.GetDB().QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name = ?", table)
		if err := row.Scan(&count); err != nil {
			t.Fatalf("failed to look up table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("table %s missing after Init()", table)
		}
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() before Init() should fail")
	}
}

func TestGetPutDelete(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.Get("habits-u1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}

	if err := store.Put("habits-u1", []byte(`[{"id":"h1"}]`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put("habits-u1", []byte(`[]`)); err != nil {
		t.Fatalf("Put() upsert failed: %v", err)
	}

	got, err := store.Get("habits-u1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("Get() = %q, want []", got)
	}

	if err := store.Delete("habits-u1"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := store.Get("habits-u1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestKeysPrefixIsLiteral(t *testing.T) {
	store := setupTestStore(t)

	for _, key := range []string{"mood-a_b", "mood-axb", "habits-a_b"} {
		if err := store.Put(key, []byte("{}")); err != nil {
			t.Fatalf("Put(%s) failed: %v", key, err)
		}
	}

	keys, err := store.Keys("mood-a_")
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "mood-a_b" {
		t.Errorf("Keys(mood-a_) = %v, want [mood-a_b]", keys)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daymood.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Put("settings-u1", []byte(`{"theme":"dark"}`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get("settings-u1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != `{"theme":"dark"}` {
		t.Errorf("Get() = %q", got)
	}
}

func TestKeysPrefixWithMultibyteUserID(t *testing.T) {
	store := setupTestStore(t)

	for _, key := range []string{"mood-jürgen", "mood-jürgen-x", "mood-jurgen", "habits-jürgen"} {
		if err := store.Put(key, []byte("{}")); err != nil {
			t.Fatalf("Put(%s) failed: %v", key, err)
		}
	}

	keys, err := store.Keys("mood-jürgen")
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	want := []string{"mood-jürgen", "mood-jürgen-x"}
	if len(keys) != len(want) || keys[0] != want[0] || keys[1] != want[1] {
		t.Errorf("Keys(mood-jürgen) = %v, want %v", keys, want)
	}
}
