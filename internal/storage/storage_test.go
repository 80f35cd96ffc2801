package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// providerContract exercises the behavior every Provider must share.
func providerContract(t *testing.T, p Provider) {
	t.Helper()

	if _, err := p.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := p.Put("habits-u1", []byte(`[{"id":"h1"}]`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := p.Put("mood-u1", []byte(`{}`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := p.Put("habits-u2", []byte(`[]`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	got, err := p.Get("habits-u1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != `[{"id":"h1"}]` {
		t.Errorf("Get() = %q", got)
	}

	// Overwrite in place
	if err := p.Put("habits-u1", []byte(`[]`)); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}
	got, _ = p.Get("habits-u1")
	if string(got) != `[]` {
		t.Errorf("Get() after overwrite = %q, want []", got)
	}

	keys, err := p.Keys("habits-")
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "habits-u1" || keys[1] != "habits-u2" {
		t.Errorf("Keys(habits-) = %v", keys)
	}

	if err := p.Delete("habits-u1"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := p.Get("habits-u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := p.Delete("never-existed"); err != nil {
		t.Errorf("Delete(never-existed) error = %v, want nil", err)
	}
}

func TestMemoryStore(t *testing.T) {
	providerContract(t, NewMemoryStore())
}

func TestMemoryStoreQuota(t *testing.T) {
	s := NewMemoryStore()
	s.Quota = 10

	if err := s.Put("a", []byte("12345")); err != nil {
		t.Fatalf("Put() within quota failed: %v", err)
	}
	if err := s.Put("b", []byte("1234567")); !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("Put() over quota error = %v, want ErrQuotaExceeded", err)
	}
	if _, err := s.Get("b"); !errors.Is(err, ErrNotFound) {
		t.Error("rejected write should not be stored")
	}

	// Replacing a value only counts the difference
	if err := s.Put("a", []byte("1234567890")); err != nil {
		t.Errorf("Put() replacing within quota failed: %v", err)
	}
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "daymood.json")
	s := NewJSONStore(path)

	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := s.Init(); err == nil {
		t.Error("second Init() should fail")
	}

	providerContract(t, s)

	// Values survive a reload, including non-JSON payloads
	if err := s.Put("eveningSummary-u1-2024-01-10", []byte("shown")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	got, err := reloaded.Get("eveningSummary-u1-2024-01-10")
	if err != nil {
		t.Fatalf("Get() after reload failed: %v", err)
	}
	if string(got) != "shown" {
		t.Errorf("Get() after reload = %q, want shown", got)
	}
}

func TestJSONStoreRollsBackFailedWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daymood.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := s.Put("habits-u1", []byte("[]")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	// A directory in the way of the temp file makes every save fail
	if err := os.Mkdir(path+".tmp", 0755); err != nil {
		t.Fatalf("failed to block temp file: %v", err)
	}

	if err := s.Delete("habits-u1"); err == nil {
		t.Fatal("Delete() should fail when the store cannot be written")
	}
	if got, err := s.Get("habits-u1"); err != nil || string(got) != "[]" {
		t.Errorf("after failed Delete() Get() = %q, %v; want entry kept", got, err)
	}

	if err := s.Put("habits-u1", []byte(`[{"id":"h1"}]`)); err == nil {
		t.Fatal("Put() should fail when the store cannot be written")
	}
	if got, _ := s.Get("habits-u1"); string(got) != "[]" {
		t.Errorf("after failed Put() Get() = %q, want previous value", got)
	}

	if err := s.Put("mood-u1", []byte("{}")); err == nil {
		t.Fatal("Put() of a new key should fail when the store cannot be written")
	}
	if _, err := s.Get("mood-u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after failed Put() Get() error = %v, want ErrNotFound", err)
	}
}

func TestJSONStoreNotLoaded(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "store.json"))

	if _, err := s.Get("k"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Get() error = %v, want ErrNotLoaded", err)
	}
	if err := s.Put("k", nil); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Put() error = %v, want ErrNotLoaded", err)
	}
	if err := s.Load(); err == nil {
		t.Error("Load() of missing file should fail")
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(path).Load(); err == nil {
		t.Error("Load() of corrupt file should fail")
	}
}

func TestKeys(t *testing.T) {
	if got := Key("habits", "user_123"); got != "habits-user_123" {
		t.Errorf("Key() = %q", got)
	}
	if got := MarkerKey("user_123", "2024-01-10"); got != "eveningSummary-user_123-2024-01-10" {
		t.Errorf("MarkerKey() = %q", got)
	}
}
