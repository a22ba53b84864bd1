package collection

import (
	"errors"
	"testing"

	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/shared"
	"github.com/desertthunder/mvk/internal/storage"
	tu "github.com/desertthunder/mvk/internal/testing"
)

func TestLibrary(t *testing.T) {
	t.Run("AddMovie advances the snapshot", func(t *testing.T) {
		backend := storage.NewMemoryStorage()
		lib := OpenLibrary(NewStore(backend, "", nil))

		if lib.Len() != 0 {
			t.Fatalf("expected empty library, got %d", lib.Len())
		}

		before := lib.Snapshot()
		if err := lib.AddMovie(models.MovieEntry{Title: "Heat"}); err != nil {
			t.Fatalf("AddMovie() error = %v", err)
		}
		if err := lib.AddMovie(models.MovieEntry{Title: "Ronin"}); err != nil {
			t.Fatalf("AddMovie() error = %v", err)
		}

		if len(before) != 0 {
			t.Error("earlier snapshots must not change")
		}

		items := lib.Items()
		if len(items) != 2 || items[0].Entry.Title != "Heat" || items[1].Key != 2 {
			t.Errorf("unexpected items %+v", items)
		}

		reopened := OpenLibrary(NewStore(backend, "", nil))
		if reopened.Len() != 2 {
			t.Errorf("expected persisted entries, got %d", reopened.Len())
		}
	})

	t.Run("failed write keeps the snapshot", func(t *testing.T) {
		backend := &tu.FailingStorage{WriteErr: errors.New("quota exceeded")}
		lib := OpenLibrary(NewStore(backend, "", nil))

		err := lib.AddMovie(models.MovieEntry{Title: "Heat"})
		if !errors.Is(err, shared.ErrStorageWrite) {
			t.Fatalf("expected ErrStorageWrite, got %v", err)
		}
		if lib.Len() != 0 {
			t.Errorf("expected empty snapshot, got %d", lib.Len())
		}
	})

	t.Run("Reload", func(t *testing.T) {
		backend := storage.NewMemoryStorage()
		lib := OpenLibrary(NewStore(backend, "", nil))

		other := NewStore(backend, "", nil)
		if _, err := other.Add(other.Load(), models.MovieEntry{Title: "Heat"}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}

		if lib.Len() != 0 {
			t.Error("snapshot should not see writes until reload")
		}
		if got := lib.Reload(); len(got) != 1 {
			t.Errorf("expected 1 entry after reload, got %d", len(got))
		}
	})
}
