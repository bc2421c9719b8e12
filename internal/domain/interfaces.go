package domain

import "context"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// Infrastructure implements these; the tracker depends on them.

// StateSlot is a single keyed slot of durable text storage.
type StateSlot interface {
	// ReadSlot returns ErrSlotEmpty when nothing has been written under key.
	ReadSlot(ctx context.Context, key string) (string, error)
	WriteSlot(ctx context.Context, key, value string) error
}

// BackupStore keeps whole-state snapshots taken before destructive swaps.
type BackupStore interface {
	SaveBackup(ctx context.Context, b Backup) error
	ListBackups(ctx context.Context) ([]Backup, error)
	GetBackup(ctx context.Context, id string) (*Backup, error)
}
