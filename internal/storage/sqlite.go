package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mvk/internal/shared"
)

// SQLiteStorage implements [Backend] on the storage_items table.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens the database at path and applies pending migrations.
func NewSQLiteStorage(path string, maxOpenConns, maxIdleConns int) (*SQLiteStorage, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}

	shared.ConfigureDatabase(db, maxOpenConns, maxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// GetItem returns the value stored under key.
func (s *SQLiteStorage) GetItem(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM storage_items WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", shared.ErrStorageRead, err)
	}
	return value, true, nil
}

// SetItem inserts or replaces the value stored under key.
func (s *SQLiteStorage) SetItem(key, value string) error {
	query := `
		INSERT INTO storage_items (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := s.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
