// Package storage provides durable key-value backends mirroring browser local storage.
//
// Each [Backend] stores opaque string values under string keys with GetItem/SetItem semantics.
// Writes are synchronous and replace the previous value in full.
//
// Key Implementations:
//   - [SQLiteStorage] : storage_items table managed by the embedded migrations in shared
//   - [BoltStorage] : single bucket in a bbolt file
//   - [MemoryStorage] : process-local map, used by tests and as a scratch backend
//
// [Open] selects a backend from [shared.StorageConfig].
package storage
