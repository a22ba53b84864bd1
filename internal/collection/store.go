// Package collection is the single source of truth for the movie collection.
//
// A [Store] loads the collection record from a [storage.Backend] and writes the full record back on every [Store.Add].
// Collections are values: Add returns a new map and never mutates its argument.
package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvk/internal/models"
	"github.com/desertthunder/mvk/internal/shared"
	"github.com/desertthunder/mvk/internal/storage"
)

// DefaultKey is the storage key holding the collection record.
const DefaultKey = "movie-collection"

// Item pairs a collection key with its entry.
type Item struct {
	Key   int
	Entry models.MovieEntry
}

// Store persists a [models.Collection] under a single storage key.
type Store struct {
	backend storage.Backend
	key     string
	logger  *log.Logger
}

// NewStore creates a [Store] over backend. An empty key selects [DefaultKey]; a nil logger discards output.
func NewStore(backend storage.Backend, key string, logger *log.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{backend: backend, key: key, logger: logger}
}

// Load reads the persisted collection.
//
// A missing, unreadable or malformed record yields an empty collection; the cause is logged, never returned.
func (s *Store) Load() models.Collection {
	raw, ok, err := s.backend.GetItem(s.key)
	if err != nil {
		s.logger.Warn("failed to read collection, starting empty", "key", s.key, "error", err)
		return models.Collection{}
	}
	if !ok {
		return models.Collection{}
	}

	var record models.Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logger.Warn("malformed collection record, starting empty", "key", s.key, "error", err)
		return models.Collection{}
	}
	if record.Movies == nil {
		return models.Collection{}
	}

	return record.Movies
}

// Add stores entry under the key len(current)+1 and persists the whole collection before returning it.
//
// On a write failure current is returned unchanged together with an error wrapping [shared.ErrStorageWrite].
func (s *Store) Add(current models.Collection, entry models.MovieEntry) (models.Collection, error) {
	key := NextKey(current)

	next := make(models.Collection, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[key] = entry

	data, err := json.Marshal(models.Record{Movies: next})
	if err != nil {
		return current, fmt.Errorf("failed to marshal collection: %w", err)
	}

	if err := s.backend.SetItem(s.key, string(data)); err != nil {
		if !errors.Is(err, shared.ErrStorageWrite) {
			err = fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
		}
		return current, err
	}

	s.logger.Info("added movie", "key", key, "title", entry.Title, "size", len(next))
	return next, nil
}

// NextKey returns the key the next added entry receives.
func NextKey(c models.Collection) int {
	return len(c) + 1
}

// List returns the entries in ascending key order.
func List(c models.Collection) []Item {
	items := make([]Item, 0, len(c))
	for _, k := range sortedKeys(c) {
		items = append(items, Item{Key: k, Entry: c[k]})
	}
	return items
}

// All iterates the entries in ascending key order. The sequence can be ranged over repeatedly.
func All(c models.Collection) iter.Seq2[int, models.MovieEntry] {
	return func(yield func(int, models.MovieEntry) bool) {
		for _, k := range sortedKeys(c) {
			if !yield(k, c[k]) {
				return
			}
		}
	}
}

// Find returns the entry stored under key.
func Find(c models.Collection, key int) (models.MovieEntry, error) {
	entry, ok := c[key]
	if !ok {
		return models.MovieEntry{}, fmt.Errorf("%w: key %d", shared.ErrEntryNotFound, key)
	}
	return entry, nil
}

func sortedKeys(c models.Collection) []int {
	keys := make([]int, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
