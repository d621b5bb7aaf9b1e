// Package storage provides audit trail storage backends.
//
// Two backends are available:
//
//   - MemoryStorage: capped in-memory slice, the default. Records do not
//     survive a restart; use it for development or when the trail is only
//     needed for live inspection.
//   - SQLiteStorage: durable single-file database using the pure-Go
//     modernc.org/sqlite driver, with WAL mode for concurrent reads.
//
// Both implement the audit.Storage interface and are safe for concurrent
// use. Backend selection happens in configuration (audit.backend).
package storage
