package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps blobs in process memory. A positive Quota caps the total
// stored bytes, mimicking browser storage limits.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	size  int
	Quota int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	newSize := s.size - len(s.data[key]) + len(value)
	if s.Quota > 0 && newSize > s.Quota {
		return fmt.Errorf("%w: writing %s needs %d bytes, quota is %d", ErrQuotaExceeded, key, newSize, s.Quota)
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	s.size = newSize
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.size -= len(s.data[key])
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Keys(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) GetConfigPath() string {
	return "memory"
}
