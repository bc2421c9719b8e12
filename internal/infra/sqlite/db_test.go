package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/macrolog/macrolog/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ─── Slots ──────────────────────────────────────────────────────────────────

func TestReadSlot_Empty(t *testing.T) {
	db := newTestDB(t)
	_, err := db.ReadSlot(context.Background(), "state")
	if !errors.Is(err, domain.ErrSlotEmpty) {
		t.Fatalf("ReadSlot() error = %v, want ErrSlotEmpty", err)
	}
}

func TestWriteSlot_Roundtrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.WriteSlot(ctx, "state", `{"days":[]}`); err != nil {
		t.Fatalf("WriteSlot() error: %v", err)
	}
	got, err := db.ReadSlot(ctx, "state")
	if err != nil {
		t.Fatalf("ReadSlot() error: %v", err)
	}
	if got != `{"days":[]}` {
		t.Errorf("ReadSlot() = %q, want %q", got, `{"days":[]}`)
	}
}

func TestWriteSlot_Overwrites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	db.WriteSlot(ctx, "state", "one")
	db.WriteSlot(ctx, "state", "two")

	got, _ := db.ReadSlot(ctx, "state")
	if got != "two" {
		t.Errorf("ReadSlot() = %q, want %q", got, "two")
	}
	n, err := db.SlotWrites(ctx, "state")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("SlotWrites() = %d, want 2", n)
	}
}

func TestSlots_AreIndependent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	db.WriteSlot(ctx, "a", "1")

	if _, err := db.ReadSlot(ctx, "b"); !errors.Is(err, domain.ErrSlotEmpty) {
		t.Errorf("ReadSlot(b) error = %v, want ErrSlotEmpty", err)
	}
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	db.WriteSlot(ctx, "state", "kept")
	db.Close()

	db, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer db.Close()
	got, err := db.ReadSlot(ctx, "state")
	if err != nil || got != "kept" {
		t.Errorf("ReadSlot() after reopen = %q, %v", got, err)
	}
}

// ─── Backups ────────────────────────────────────────────────────────────────

func TestBackups_SaveListGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	older := time.Now().Add(-time.Hour)

	if err := db.SaveBackup(ctx, domain.Backup{ID: "b1", Reason: "import", Days: 3, Data: "{1}", CreatedAt: older}); err != nil {
		t.Fatalf("SaveBackup() error: %v", err)
	}
	if err := db.SaveBackup(ctx, domain.Backup{ID: "b2", Reason: "restore", Days: 1, Data: "{2}"}); err != nil {
		t.Fatalf("SaveBackup() error: %v", err)
	}

	list, err := db.ListBackups(ctx)
	if err != nil {
		t.Fatalf("ListBackups() error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListBackups() returned %d, want 2", len(list))
	}
	if list[0].ID != "b2" {
		t.Errorf("newest backup = %q, want b2", list[0].ID)
	}
	if list[0].Data != "" {
		t.Error("ListBackups should not load data")
	}

	b, err := db.GetBackup(ctx, "b1")
	if err != nil {
		t.Fatalf("GetBackup() error: %v", err)
	}
	if b.Data != "{1}" || b.Days != 3 || b.Reason != "import" {
		t.Errorf("GetBackup() = %+v", b)
	}
}

func TestGetBackup_NotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetBackup(context.Background(), "missing")
	if !errors.Is(err, domain.ErrBackupNotFound) {
		t.Errorf("GetBackup() error = %v, want ErrBackupNotFound", err)
	}
}
