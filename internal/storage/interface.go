package storage

import (
	"context"

	"github.com/gamttori/gamttori/internal/models"
)

// KV is the key-value half of a Provider. Values are plain strings or JSON
// blobs and every write is a full overwrite (last writer wins).
type KV interface {
	// Get reports ok=false with a nil error for absent keys.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	// Keys returns the sorted keys starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Provider is the device-local store.
type Provider interface {
	KV

	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Utils
	GetConfigPath() string
}
