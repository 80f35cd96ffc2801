package storage

import "errors"

var (
	// ErrNotFound is returned by Provider.Get for keys with no stored value
	ErrNotFound = errors.New("key not found")
	// ErrMalformed is returned by Adapter.Load when a stored blob cannot be decoded
	ErrMalformed = errors.New("stored value is malformed")
	// ErrQuotaExceeded is returned when a provider has no room for a write
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrNotLoaded is returned when a provider is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)
