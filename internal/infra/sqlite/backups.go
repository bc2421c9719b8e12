// Whole-state backups taken before an import or restore replaces the
// tracker document.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/macrolog/macrolog/internal/domain"
)

// ─── Backup Schema ──────────────────────────────────────────────────────────

// BackupMigrations returns the backup schema statements.
func BackupMigrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS backups (
			id         TEXT PRIMARY KEY,
			reason     TEXT NOT NULL,
			days       INTEGER NOT NULL DEFAULT 0,
			data       TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backups_created ON backups(created_at)`,
	}
}

// ─── Backup Operations ──────────────────────────────────────────────────────

// backupTimeLayout is fixed-width so created_at sorts lexically.
const backupTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SaveBackup stores b. CreatedAt defaults to now.
func (db *DB) SaveBackup(ctx context.Context, b domain.Backup) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO backups (id, reason, days, data, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, b.ID, b.Reason, b.Days, b.Data, b.CreatedAt.UTC().Format(backupTimeLayout))
	return err
}

// ListBackups returns backups newest first, without their data.
func (db *DB) ListBackups(ctx context.Context) ([]domain.Backup, error) {
	rows, err := db.db.QueryContext(ctx, `
		SELECT id, reason, days, created_at
		FROM backups ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Backup
	for rows.Next() {
		var b domain.Backup
		var created string
		if err := rows.Scan(&b.ID, &b.Reason, &b.Days, &created); err != nil {
			return nil, err
		}
		b.CreatedAt, _ = time.Parse(backupTimeLayout, created)
		result = append(result, b)
	}
	return result, rows.Err()
}

// GetBackup returns one backup including its data, or domain.ErrBackupNotFound.
func (db *DB) GetBackup(ctx context.Context, id string) (*domain.Backup, error) {
	var b domain.Backup
	var created string
	err := db.db.QueryRowContext(ctx, `
		SELECT id, reason, days, data, created_at
		FROM backups WHERE id = ?
	`, id).Scan(&b.ID, &b.Reason, &b.Days, &b.Data, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBackupNotFound
	}
	if err != nil {
		return nil, err
	}
	b.CreatedAt, _ = time.Parse(backupTimeLayout, created)
	return &b, nil
}
