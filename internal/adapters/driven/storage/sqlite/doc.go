// Package sqlite provides the SQLite-based run history store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. The schema is
// managed through versioned migrations embedded from the migrations/
// directory.
//
// By default, the database is stored at ~/.notion-sync/data/history.db.
//
// All operations are thread-safe; the store opens the database in WAL
// mode and relies on SQLite's own locking.
package sqlite
