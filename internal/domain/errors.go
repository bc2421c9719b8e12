package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Matched with errors.Is; callers wrap them with context.

var (
	// Record errors
	ErrDayNotFound      = errors.New("day record not found")
	ErrExerciseNotFound = errors.New("exercise entry not found")
	ErrUnknownField     = errors.New("unknown field")

	// Target errors
	ErrNoTargets = errors.New("goal weight and calories are both required")

	// Delete confirmation errors
	ErrNotArmed = errors.New("delete was not armed for this day")

	// Storage errors
	ErrSlotEmpty      = errors.New("storage slot is empty")
	ErrBackupNotFound = errors.New("backup not found")

	// Import errors
	ErrImportParse = errors.New("import file is not valid JSON")
	ErrImportShape = errors.New("import file has no days")
)
