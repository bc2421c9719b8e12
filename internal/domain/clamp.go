package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ─── Numeric Fields ─────────────────────────────────────────────────────────

// Field names a numeric input the user can edit.
type Field string

const (
	FieldCalories   Field = "calories"
	FieldProtein    Field = "protein"
	FieldCarbs      Field = "carbs"
	FieldFat        Field = "fat"
	FieldGoalWeight Field = "goalWeight"
	FieldWeight     Field = "weight"
	FieldSets       Field = "sets"
	FieldReps       Field = "reps"
	FieldDuration   Field = "duration"
)

// DayMacros lists the per-day intake fields in display order.
var DayMacros = []Field{FieldCalories, FieldProtein, FieldCarbs, FieldFat}

// ExerciseMetrics lists the exercise entry fields in display order.
var ExerciseMetrics = []Field{FieldWeight, FieldSets, FieldReps, FieldDuration}

// fieldLimits holds the inclusive upper bound for each field; the lower
// bound is always 0.
var fieldLimits = map[Field]float64{
	FieldCalories:   100000,
	FieldProtein:    10000,
	FieldCarbs:      10000,
	FieldFat:        10000,
	FieldGoalWeight: 10000,
	FieldWeight:     10000,
	FieldSets:       1000,
	FieldReps:       1000,
	FieldDuration:   1440,
}

// ParseField resolves a field name.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if _, ok := fieldLimits[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// Max returns the field's upper bound.
func (f Field) Max() float64 { return fieldLimits[f] }

// IsDayMacro reports whether f is one of the per-day intake fields.
func (f Field) IsDayMacro() bool {
	switch f {
	case FieldCalories, FieldProtein, FieldCarbs, FieldFat:
		return true
	}
	return false
}

// IsExerciseMetric reports whether f belongs to an exercise entry.
func (f Field) IsExerciseMetric() bool {
	switch f {
	case FieldWeight, FieldSets, FieldReps, FieldDuration:
		return true
	}
	return false
}

// ClampValue coerces v into [0, f.Max()]. Values outside the range become 0.
func ClampValue(f Field, v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > f.Max() {
		return 0
	}
	return v
}

// Clamp parses raw user input for f. Blank input clears the field;
// non-numeric or out-of-range input becomes 0 instead of being rejected.
func Clamp(f Field, raw string) Amount {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Empty()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Num(0)
	}
	return Num(ClampValue(f, v))
}
