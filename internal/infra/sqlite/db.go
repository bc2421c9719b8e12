// Package sqlite persists tracker state in a single SQLite file.
// It uses the pure-Go modernc.org/sqlite driver so the binary stays CGO-free.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the data directory.
const FileName = "macrolog.db"

// DB wraps the SQLite handle.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database under dir and applies migrations.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One writer; the tracker serializes mutations anyway.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{db: sqlDB, path: path}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string { return db.path }

// Close releases the database handle.
func (db *DB) Close() error { return db.db.Close() }

func (db *DB) migrate() error {
	stmts := append(SlotMigrations(), BackupMigrations()...)
	for _, stmt := range stmts {
		if _, err := db.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
