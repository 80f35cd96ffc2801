package storage

// Provider is a key-value store of serialized blobs.
// Values are opaque bytes; the Adapter layers JSON and user namespacing on top.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns ErrNotFound when key has never been written or was deleted.
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	// Keys lists stored keys beginning with prefix, sorted.
	Keys(prefix string) ([]string, error)

	// Utils
	GetConfigPath() string
}
