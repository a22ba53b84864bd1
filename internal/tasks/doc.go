// Package tasks runs long-lived collection operations with real-time progress reporting.
//
// # Bulk Import
//
// [Importer.Run] adds many titles to the collection through the same suggestion pipeline as the interactive
// search:
//
//  1. Resolve : workers search the movie database for each title and fetch the credits of the best match
//     - The best match is the first result whose release year equals the requested year, or the first result
//     - Requests are paced by a shared token-bucket limiter
//  2. Add : resolved entries are submitted one at a time, in input order
//     - Movies already in the collection are skipped
//     - A storage failure stops the import
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
