// Package store provides SQLite-backed storage for measurement run
// metadata.
//
// Each measurement run gets a row in runs; free-form metadata attaches
// to a run as key/value pairs in run_metadata, one value per key
// (writes upsert). The annotation helpers in internal/annotate build
// their overwrite/append semantics on top of this surface.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Ordering of metadata reads is deterministic: ORDER BY key ASC
// COLLATE BINARY.
package store
