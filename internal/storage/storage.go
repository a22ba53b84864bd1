package storage

import (
	"fmt"
	"strings"

	"github.com/desertthunder/mvk/internal/shared"
)

// Backend is a synchronous key-value store.
type Backend interface {
	// GetItem returns the value stored under key. ok is false when the key is absent.
	GetItem(key string) (value string, ok bool, err error)

	// SetItem overwrites the value stored under key.
	SetItem(key, value string) error

	// Close releases the underlying resources.
	Close() error
}

const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// Open creates the [Backend] named by cfg.Driver. An empty driver selects SQLite.
func Open(cfg shared.StorageConfig) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverSQLite, "sqlite3":
		return NewSQLiteStorage(cfg.Path, cfg.MaxOpenConns, cfg.MaxIdleConns)
	case DriverBolt, "bbolt":
		return NewBoltStorage(cfg.Path)
	case DriverMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownDriver, cfg.Driver)
	}
}
