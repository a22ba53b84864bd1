package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/desertthunder/mvk/internal/shared"
)

func TestBackends(t *testing.T) {
	tt := []struct {
		name   string
		driver string
	}{
		{name: "sqlite", driver: DriverSQLite},
		{name: "bolt", driver: DriverBolt},
		{name: "memory", driver: DriverMemory},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			cfg := shared.StorageConfig{Driver: tc.driver, Path: filepath.Join(t.TempDir(), "mvk.db")}
			backend, err := Open(cfg)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer backend.Close()

			t.Run("missing key", func(t *testing.T) {
				value, ok, err := backend.GetItem("movie-collection")
				if err != nil {
					t.Fatalf("GetItem() error = %v", err)
				}
				if ok || value != "" {
					t.Errorf("expected absent key, got ok=%v value=%q", ok, value)
				}
			})

			t.Run("set then get", func(t *testing.T) {
				if err := backend.SetItem("movie-collection", `{"movies":{}}`); err != nil {
					t.Fatalf("SetItem() error = %v", err)
				}
				value, ok, err := backend.GetItem("movie-collection")
				if err != nil || !ok {
					t.Fatalf("GetItem() ok=%v error=%v", ok, err)
				}
				if value != `{"movies":{}}` {
					t.Errorf("unexpected value %q", value)
				}
			})

			t.Run("overwrite", func(t *testing.T) {
				if err := backend.SetItem("movie-collection", `{"movies":{"1":{"title":"Heat"}}}`); err != nil {
					t.Fatalf("SetItem() error = %v", err)
				}
				value, _, _ := backend.GetItem("movie-collection")
				if value != `{"movies":{"1":{"title":"Heat"}}}` {
					t.Errorf("expected overwritten value, got %q", value)
				}
			})

			t.Run("keys are independent", func(t *testing.T) {
				if _, ok, _ := backend.GetItem("other"); ok {
					t.Error("expected other key to be absent")
				}
			})
		})
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverBolt} {
		t.Run(driver, func(t *testing.T) {
			cfg := shared.StorageConfig{Driver: driver, Path: filepath.Join(t.TempDir(), "data", "mvk.db")}

			first, err := Open(cfg)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if err := first.SetItem("movie-collection", "persisted"); err != nil {
				t.Fatalf("SetItem() error = %v", err)
			}
			if err := first.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			second, err := Open(cfg)
			if err != nil {
				t.Fatalf("reopen error = %v", err)
			}
			defer second.Close()

			value, ok, err := second.GetItem("movie-collection")
			if err != nil || !ok || value != "persisted" {
				t.Errorf("expected persisted value, got %q ok=%v err=%v", value, ok, err)
			}
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(shared.StorageConfig{Driver: "postgres"})
	if !errors.Is(err, shared.ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestSQLiteStorageClosed(t *testing.T) {
	backend, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "mvk.db"), 1, 1)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	backend.Close()

	if err := backend.SetItem("k", "v"); !errors.Is(err, shared.ErrStorageWrite) {
		t.Errorf("expected ErrStorageWrite, got %v", err)
	}
	if _, _, err := backend.GetItem("k"); !errors.Is(err, shared.ErrStorageRead) {
		t.Errorf("expected ErrStorageRead, got %v", err)
	}
}
