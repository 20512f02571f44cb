package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema (applications keyed object store)
const currentSchemaVersion = 1

// Mode selects which of the two isolated backends a store handle serves.
type Mode string

const (
	// Live is the user's real data.
	Live Mode = "live"
	// Sandbox is the reseedable demo dataset.
	Sandbox Mode = "sandbox"
)

// Filename returns the database filename for the mode.
func (m Mode) Filename() string {
	return string(m) + ".db"
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Live || m == Sandbox
}

// Store is a durable keyed record store backed by one SQLite file.
// A handle serves exactly one mode for its whole lifetime.
type Store struct {
	db   *sql.DB
	mode Mode
}

// Open creates or opens the database for mode under dir.
// Applies required pragmas and the schema automatically.
//
// This function is idempotent - safe to call multiple times against the
// same path, though callers should share one handle via Manager rather
// than racing separate opens.
func Open(dir string, mode Mode) (*Store, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("open store: unknown mode %q", mode)
	}
	path := filepath.Join(dir, mode.Filename())

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w: %v", mode, ErrStorageUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store %s: %w: %v", mode, ErrStorageUnavailable, err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY errors under the single-logical-writer model.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store %s: %w: %v", mode, ErrStorageUnavailable, err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store %s: %w: %v", mode, ErrStorageUnavailable, err)
	}

	return &Store{db: db, mode: mode}, nil
}

// Mode returns the mode this handle was opened with.
func (s *Store) Mode() Mode {
	return s.mode
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version > currentSchemaVersion:
		return fmt.Errorf("database schema version %d is newer than supported %d", version, currentSchemaVersion)
	}
	return nil
}
