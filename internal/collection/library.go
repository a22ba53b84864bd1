package collection

import (
	"sync"

	"github.com/desertthunder/mvk/internal/models"
)

// Library couples a [Store] with the in-memory collection it mirrors.
//
// [Library.AddMovie] is the OnAddMovie callback handed to intake: the snapshot only advances after the record was
// written.
type Library struct {
	mu      sync.RWMutex
	store   *Store
	current models.Collection
}

// OpenLibrary loads the persisted collection from store.
func OpenLibrary(store *Store) *Library {
	return &Library{store: store, current: store.Load()}
}

// Snapshot returns the current collection. Collections are never mutated in place, so the map may be read freely
// but must not be written to.
func (l *Library) Snapshot() models.Collection {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Items returns the current entries in key order.
func (l *Library) Items() []Item {
	return List(l.Snapshot())
}

// Len returns the number of entries.
func (l *Library) Len() int {
	return len(l.Snapshot())
}

// AddMovie persists entry and advances the snapshot.
func (l *Library) AddMovie(entry models.MovieEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := l.store.Add(l.current, entry)
	if err != nil {
		return err
	}
	l.current = next
	return nil
}

// Reload discards the snapshot and reads the record again.
func (l *Library) Reload() models.Collection {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = l.store.Load()
	return l.current
}
