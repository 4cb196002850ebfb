// Package store implements the local SQLite-backed cache of events and
// todos (§4.I): upsert-by-UID tables, a compact short-ID allocator, and
// a per-backend resource/metadata table used to drive sync (§4.J).
package store

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection pool backing the local cache.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens (creating if necessary) the SQLite database at dsn and
// runs pending migrations. Use ":memory:" for an in-memory store.
func Open(dsn string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := configure(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure sqlite database: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

func configure(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("exec %q: %w", p, err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying pool for callers that need raw access
// (notably the migration driver and tests).
func (s *Store) DB() *sql.DB {
	return s.db
}
