// Package tracker owns the application state and every mutation on it.
//
// The Store has an explicit lifecycle:
//  1. Load reads the storage slot once and falls back to defaults on any problem
//  2. Mutate runs one change to completion on a private copy and swaps it in
//  3. Persist writes the whole document back to the slot (fire-and-forget)
//
// Mutations are serialized, so callers on different goroutines (HTTP
// handlers) still observe strict run-to-completion ordering.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/macrolog/macrolog/internal/app/macros"
	"github.com/macrolog/macrolog/internal/domain"
	"github.com/macrolog/macrolog/internal/infra/catalog"
	"github.com/macrolog/macrolog/internal/infra/observability"
)

// Config controls store behavior.
type Config struct {
	SlotKey string           // Storage slot holding the document (default "macrolog-state")
	Clock   func() time.Time // Source of "today" (default time.Now)
}

// DefaultConfig returns store defaults.
func DefaultConfig() Config {
	return Config{
		SlotKey: "macrolog-state",
		Clock:   time.Now,
	}
}

// Store is the single owner of AppState.
type Store struct {
	mu      sync.Mutex
	cfg     Config
	slot    domain.StateSlot
	backups domain.BackupStore // nil disables pre-import backups
	log     *zap.Logger

	state  domain.AppState
	guard  DeleteGuard
	active int
}

// New creates a store holding the default state. Call Load to read the slot.
func New(cfg Config, slot domain.StateSlot, backups domain.BackupStore, log *zap.Logger) *Store {
	if cfg.SlotKey == "" {
		cfg.SlotKey = DefaultConfig().SlotKey
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		cfg:     cfg,
		slot:    slot,
		backups: backups,
		log:     log.Named("store"),
	}
	s.state = domain.DefaultState(s.today())
	return s
}

func (s *Store) today() string { return domain.Today(s.cfg.Clock()) }

// ─── Lifecycle ──────────────────────────────────────────────────────────────

// Load replaces the in-memory state with the slot contents. Read and
// parse failures are logged and leave the default state in place.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.DefaultState(s.today())
	s.guard.Disarm()
	s.active = 0

	raw, err := s.slot.ReadSlot(ctx, s.cfg.SlotKey)
	switch {
	case errors.Is(err, domain.ErrSlotEmpty):
		s.log.Info("no stored state, starting fresh", zap.String("slot", s.cfg.SlotKey))
		observability.LoadFallbacks.WithLabelValues("empty").Inc()
		s.publishLocked()
		return
	case err != nil:
		s.log.Warn("read stored state failed, using defaults", zap.Error(err))
		observability.LoadFallbacks.WithLabelValues("read_error").Inc()
		s.publishLocked()
		return
	}

	state, err := domain.DecodeStoredState([]byte(raw), s.today())
	if err != nil {
		s.log.Warn("stored state is malformed, using defaults", zap.Error(err))
		observability.LoadFallbacks.WithLabelValues("malformed").Inc()
		s.publishLocked()
		return
	}
	s.state = state
	s.log.Info("state loaded", zap.Int("days", len(state.Days)))
	s.publishLocked()
}

// Mutate runs fn on a copy of the state and, if fn succeeds, swaps the
// copy in and persists it. A failing fn leaves the state untouched.
// Every mutation disarms a pending delete.
func (s *Store) Mutate(ctx context.Context, op string, fn func(st *domain.AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateLocked(ctx, op, fn)
}

func (s *Store) mutateLocked(ctx context.Context, op string, fn func(st *domain.AppState) error) error {
	work := s.state.Clone()
	err := fn(&work)
	observability.Mutations.WithLabelValues(op, observability.ResultLabel(err)).Inc()
	if err != nil {
		s.log.Debug("mutation rejected", zap.String("op", op), zap.Error(err))
		return err
	}

	s.state = work
	s.guard.Disarm()
	if s.active >= len(s.state.Days) {
		s.active = len(s.state.Days) - 1
	}
	s.persistLocked(ctx)
	return nil
}

// Persist writes the current state to the slot. Failures are logged and
// counted but never returned; the in-memory state stays authoritative and
// the next successful write heals the slot.
func (s *Store) Persist(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked(ctx)
}

// The write detaches from ctx cancellation: once a change is applied in
// memory it must reach the slot even if the caller has gone away.
func (s *Store) persistLocked(ctx context.Context) {
	s.publishLocked()
	start := time.Now()

	data, err := json.Marshal(s.state)
	if err == nil {
		err = s.slot.WriteSlot(context.WithoutCancel(ctx), s.cfg.SlotKey, string(data))
	}
	observability.ObservePersist(start, err)
	if err != nil {
		s.log.Error("persist state failed", zap.String("slot", s.cfg.SlotKey), zap.Error(err))
	}
}

func (s *Store) publishLocked() {
	observability.DaysTracked.Set(float64(len(s.state.Days)))
}

// ─── Reads ──────────────────────────────────────────────────────────────────

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Day returns a copy of day i.
func (s *Store) Day(i int) (domain.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.state.Days) {
		return domain.DayRecord{}, dayNotFound(i)
	}
	return s.state.Days[i].Clone(), nil
}

// SetActive selects the day being edited. Selecting another day disarms
// a pending delete.
func (s *Store) SetActive(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.state.Days) {
		return dayNotFound(i)
	}
	s.active = i
	s.guard.Disarm()
	return nil
}

// View is a consistent read of everything the form shows.
type View struct {
	State  domain.AppState
	Active int
	Guard  DeleteGuard
}

// View returns state, active day and delete guard under one lock.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{State: s.state.Clone(), Active: s.active, Guard: s.guard}
}

// Weekly returns the derived weekly view.
func (s *Store) Weekly() Weekly {
	return BuildWeekly(s.Snapshot())
}

func dayNotFound(i int) error {
	return fmt.Errorf("%w: index %d", domain.ErrDayNotFound, i)
}

func checkDay(st *domain.AppState, i int) error {
	if i < 0 || i >= len(st.Days) {
		return dayNotFound(i)
	}
	return nil
}

// ─── Targets ────────────────────────────────────────────────────────────────

// SetTargets recomputes targets from goalWeight and calories. When either
// is missing the targets are left alone and domain.ErrNoTargets is returned.
func (s *Store) SetTargets(ctx context.Context, goalWeight, calories float64) (domain.MacroTargets, error) {
	goalWeight = domain.ClampValue(domain.FieldGoalWeight, goalWeight)
	calories = domain.ClampValue(domain.FieldCalories, calories)

	t, ok := macros.ComputeTargets(goalWeight, calories)
	if !ok {
		observability.Mutations.WithLabelValues("set_targets", observability.ResultError).Inc()
		return domain.MacroTargets{}, domain.ErrNoTargets
	}
	err := s.Mutate(ctx, "set_targets", func(st *domain.AppState) error {
		st.Targets = t
		return nil
	})
	return t, err
}

// ─── Days ───────────────────────────────────────────────────────────────────

// NewDay prepends an empty record for today and makes it active.
func (s *Store) NewDay(ctx context.Context) (domain.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	err := s.mutateLocked(ctx, "new_day", func(st *domain.AppState) error {
		st.Days = PrependDay(st.Days, today)
		return nil
	})
	if err != nil {
		return domain.DayRecord{}, err
	}
	s.active = 0
	return s.state.Days[0].Clone(), nil
}

// SetDayField edits one field of day i. "date" is stored as given;
// intake fields are clamped.
func (s *Store) SetDayField(ctx context.Context, i int, field, raw string) error {
	return s.Mutate(ctx, "set_day_field", func(st *domain.AppState) error {
		if err := checkDay(st, i); err != nil {
			return err
		}
		day := &st.Days[i]
		if field == "date" {
			day.Date = strings.TrimSpace(raw)
			return nil
		}
		f, err := domain.ParseField(field)
		if err != nil || !f.IsDayMacro() {
			return fmt.Errorf("%w: day field %q", domain.ErrUnknownField, field)
		}
		return day.SetMacro(f, domain.Clamp(f, raw))
	})
}

// ClickDelete applies one delete click on day i. The first click arms
// the guard and returns false; a second click on the same day deletes it
// and returns true.
func (s *Store) ClickDelete(ctx context.Context, i int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.state.Days) {
		return false, dayNotFound(i)
	}
	if !s.guard.Click(i) {
		return false, nil
	}
	if err := s.deleteLocked(ctx, i); err != nil {
		return false, err
	}
	return true, nil
}

// ArmDelete arms the guard for day i.
func (s *Store) ArmDelete(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.state.Days) {
		return dayNotFound(i)
	}
	s.guard.Arm(i)
	return nil
}

// ConfirmDelete deletes day i if the guard is armed for it.
func (s *Store) ConfirmDelete(ctx context.Context, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.ArmedFor(i) {
		return fmt.Errorf("%w: index %d", domain.ErrNotArmed, i)
	}
	return s.deleteLocked(ctx, i)
}

// CancelDelete disarms a pending delete.
func (s *Store) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guard.Disarm()
}

func (s *Store) deleteLocked(ctx context.Context, i int) error {
	today := s.today()
	err := s.mutateLocked(ctx, "delete_day", func(st *domain.AppState) error {
		if err := checkDay(st, i); err != nil {
			return err
		}
		st.Days = RemoveDay(st.Days, i, today)
		return nil
	})
	if err != nil {
		return err
	}
	if s.active > i {
		s.active--
	}
	return nil
}

// ─── Exercises ──────────────────────────────────────────────────────────────

// AddExercise appends an empty entry to day i and returns its index.
func (s *Store) AddExercise(ctx context.Context, i int) (int, error) {
	var idx int
	err := s.Mutate(ctx, "add_exercise", func(st *domain.AppState) error {
		if err := checkDay(st, i); err != nil {
			return err
		}
		st.Days[i].Exercises = append(st.Days[i].Exercises, domain.ExerciseEntry{})
		idx = len(st.Days[i].Exercises) - 1
		return nil
	})
	return idx, err
}

// RemoveExercise removes entry j from day i.
func (s *Store) RemoveExercise(ctx context.Context, i, j int) error {
	return s.Mutate(ctx, "remove_exercise", func(st *domain.AppState) error {
		if err := checkDay(st, i); err != nil {
			return err
		}
		list, err := RemoveExercise(st.Days[i].Exercises, j)
		if err != nil {
			return err
		}
		st.Days[i].Exercises = list
		return nil
	})
}

// SetExerciseField edits entry j of day i; see EditExercise.
func (s *Store) SetExerciseField(ctx context.Context, i, j int, field, value string) error {
	op := "set_exercise_field"
	if field == FieldName && value == catalog.SelectAll {
		op = "expand_exercise"
	}
	return s.Mutate(ctx, op, func(st *domain.AppState) error {
		if err := checkDay(st, i); err != nil {
			return err
		}
		list, err := EditExercise(st.Days[i].Exercises, j, field, value)
		if err != nil {
			return err
		}
		st.Days[i].Exercises = list
		return nil
	})
}

// ─── Replace & Backups ──────────────────────────────────────────────────────

// Replace swaps in next as the whole state, as a single step. When a
// backup store is configured the current state is saved first; if that
// save fails nothing is replaced.
func (s *Store) Replace(ctx context.Context, next domain.AppState, reason string) error {
	if len(next.Days) == 0 {
		return domain.ErrImportShape
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backups != nil {
		data, err := json.Marshal(s.state)
		if err != nil {
			return fmt.Errorf("encode backup: %w", err)
		}
		b := domain.Backup{
			ID:        uuid.NewString(),
			CreatedAt: s.cfg.Clock(),
			Reason:    reason,
			Days:      len(s.state.Days),
			Data:      string(data),
		}
		if err := s.backups.SaveBackup(context.WithoutCancel(ctx), b); err != nil {
			return fmt.Errorf("save backup: %w", err)
		}
		s.log.Info("backup saved", zap.String("id", b.ID), zap.String("reason", reason))
	}

	next = next.Clone()
	err := s.mutateLocked(ctx, "replace_"+reason, func(st *domain.AppState) error {
		*st = next
		return nil
	})
	if err == nil {
		s.active = 0
	}
	return err
}

// Backups lists saved backups, newest first.
func (s *Store) Backups(ctx context.Context) ([]domain.Backup, error) {
	if s.backups == nil {
		return nil, nil
	}
	return s.backups.ListBackups(ctx)
}

// RestoreBackup replaces the state with backup id. The stored document
// goes through the same defaulting as a normal load.
func (s *Store) RestoreBackup(ctx context.Context, id string) error {
	if s.backups == nil {
		return domain.ErrBackupNotFound
	}
	b, err := s.backups.GetBackup(ctx, id)
	if err != nil {
		return err
	}
	state, err := domain.DecodeStoredState([]byte(b.Data), s.today())
	if err != nil {
		return fmt.Errorf("decode backup %s: %w", id, err)
	}
	return s.Replace(ctx, state, "restore")
}
