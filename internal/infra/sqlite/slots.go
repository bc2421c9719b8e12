// Keyed text slots. The tracker keeps its whole document in one slot.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/macrolog/macrolog/internal/domain"
)

// ─── Slot Schema ────────────────────────────────────────────────────────────

// SlotMigrations returns the slot schema statements.
func SlotMigrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS slots (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			writes     INTEGER NOT NULL DEFAULT 1,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
	}
}

// ─── Slot Operations ────────────────────────────────────────────────────────

// ReadSlot returns the text stored under key, or domain.ErrSlotEmpty.
func (db *DB) ReadSlot(ctx context.Context, key string) (string, error) {
	var value string
	err := db.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrSlotEmpty
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// WriteSlot replaces the text stored under key.
func (db *DB) WriteSlot(ctx context.Context, key, value string) error {
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, writes, updated_at)
		VALUES (?, ?, 1, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			writes     = slots.writes + 1,
			updated_at = datetime('now')
	`, key, value)
	return err
}

// SlotWrites returns how many times key has been written.
func (db *DB) SlotWrites(ctx context.Context, key string) (int, error) {
	var n int
	err := db.db.QueryRowContext(ctx, `SELECT writes FROM slots WHERE key = ?`, key).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}
