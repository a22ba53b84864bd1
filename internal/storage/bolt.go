package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/mvk/internal/shared"
	bolt "go.etcd.io/bbolt"
)

var bucketItems = []byte("storage_items")

// BoltStorage implements [Backend] with a single bbolt bucket.
type BoltStorage struct {
	db *bolt.DB
}

// NewBoltStorage opens (or creates) the bbolt file at path.
func NewBoltStorage(path string) (*BoltStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketItems)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStorage{db: db}, nil
}

// GetItem returns the value stored under key.
func (s *BoltStorage) GetItem(key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketItems)
		if b == nil {
			return nil
		}
		if data := b.Get([]byte(key)); data != nil {
			value, ok = string(data), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", shared.ErrStorageRead, err)
	}

	return value, ok, nil
}

// SetItem overwrites the value stored under key.
func (s *BoltStorage) SetItem(key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketItems)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}
	return nil
}

// Close closes the bbolt file.
func (s *BoltStorage) Close() error {
	return s.db.Close()
}
