package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/logger"
)

// Adapter reads and writes one user's JSON blobs on top of a Provider.
type Adapter struct {
	provider Provider
	userID   string
}

func NewAdapter(provider Provider, userID string) *Adapter {
	return &Adapter{
		provider: provider,
		userID:   userID,
	}
}

func (a *Adapter) UserID() string {
	return a.userID
}

// Load decodes the collection blob into dst. It returns false with a nil error
// when nothing is stored, and ErrMalformed when the stored bytes do not decode.
// dst must not be trusted after an error.
func (a *Adapter) Load(collection constants.Collection, dst any) (bool, error) {
	key := Key(collection, a.userID)

	data, err := a.provider.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

// Save encodes v and writes it under the collection key. Failures are logged
// and returned; the caller's in-memory state is left untouched.
func (a *Adapter) Save(collection constants.Collection, v any) error {
	key := Key(collection, a.userID)

	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to encode blob", "key", key, "error", err)
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := a.provider.Put(key, data); err != nil {
		logger.Warn("Failed to persist blob", "key", key, "error", err)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	logger.Debug("Persisted blob", "key", key, "bytes", len(data))
	return nil
}

// Remove deletes the collection blob.
func (a *Adapter) Remove(collection constants.Collection) error {
	key := Key(collection, a.userID)
	if err := a.provider.Delete(key); err != nil {
		logger.Warn("Failed to delete blob", "key", key, "error", err)
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Marked reports whether the evening summary was already shown on date.
// Read failures count as not shown.
func (a *Adapter) Marked(date string) bool {
	key := MarkerKey(a.userID, date)
	data, err := a.provider.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Failed to read marker", "key", key, "error", err)
		}
		return false
	}
	return string(data) == constants.EveningSummaryMarker
}

// Mark records that the evening summary was shown on date.
func (a *Adapter) Mark(date string) error {
	key := MarkerKey(a.userID, date)
	if err := a.provider.Put(key, []byte(constants.EveningSummaryMarker)); err != nil {
		logger.Warn("Failed to persist marker", "key", key, "error", err)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
