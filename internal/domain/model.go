// Package domain contains pure tracker types with ZERO infrastructure imports.
// It imports nothing from the rest of the module.
package domain

import (
	"encoding/json"
	"time"
)

// ─── Targets ────────────────────────────────────────────────────────────────

// MacroTargets is the daily intake the user aims for.
type MacroTargets struct {
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
	GoalWeight float64 `json:"goalWeight"`
}

// DefaultTargets returns the built-in targets used until the user sets their own.
func DefaultTargets() MacroTargets {
	return MacroTargets{
		Calories:   2000,
		Protein:    170,
		Carbs:      205,
		Fat:        56,
		GoalWeight: 170,
	}
}

// ─── Day Records ────────────────────────────────────────────────────────────

// ExerciseEntry is one line of a day's training log.
// Group is "-" for cardio, where weight, sets and reps do not apply.
type ExerciseEntry struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Group    string `json:"group"`
	Name     string `json:"name"`
	Weight   Amount `json:"weight"`
	Sets     Amount `json:"sets"`
	Reps     Amount `json:"reps"`
	Duration Amount `json:"duration"`
}

// ClearMetrics empties weight, sets, reps and duration.
func (e *ExerciseEntry) ClearMetrics() {
	e.Weight, e.Sets, e.Reps, e.Duration = Empty(), Empty(), Empty(), Empty()
}

// Metric returns the value stored under an exercise field.
func (e ExerciseEntry) Metric(f Field) Amount {
	switch f {
	case FieldWeight:
		return e.Weight
	case FieldSets:
		return e.Sets
	case FieldReps:
		return e.Reps
	case FieldDuration:
		return e.Duration
	}
	return Empty()
}

// SetMetric stores v under an exercise field.
func (e *ExerciseEntry) SetMetric(f Field, v Amount) error {
	switch f {
	case FieldWeight:
		e.Weight = v
	case FieldSets:
		e.Sets = v
	case FieldReps:
		e.Reps = v
	case FieldDuration:
		e.Duration = v
	default:
		return ErrUnknownField
	}
	return nil
}

// DayRecord is everything logged for one date.
type DayRecord struct {
	Date      string          `json:"date"`
	Calories  Amount          `json:"calories"`
	Protein   Amount          `json:"protein"`
	Carbs     Amount          `json:"carbs"`
	Fat       Amount          `json:"fat"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// NewDayRecord returns an empty record for date.
func NewDayRecord(date string) DayRecord {
	return DayRecord{Date: date, Exercises: []ExerciseEntry{}}
}

// Macro returns the intake value stored under f.
func (d DayRecord) Macro(f Field) Amount {
	switch f {
	case FieldCalories:
		return d.Calories
	case FieldProtein:
		return d.Protein
	case FieldCarbs:
		return d.Carbs
	case FieldFat:
		return d.Fat
	}
	return Empty()
}

// SetMacro stores v under an intake field.
func (d *DayRecord) SetMacro(f Field, v Amount) error {
	switch f {
	case FieldCalories:
		d.Calories = v
	case FieldProtein:
		d.Protein = v
	case FieldCarbs:
		d.Carbs = v
	case FieldFat:
		d.Fat = v
	default:
		return ErrUnknownField
	}
	return nil
}

// Clone returns a deep copy.
func (d DayRecord) Clone() DayRecord {
	out := d
	if d.Exercises != nil {
		out.Exercises = make([]ExerciseEntry, len(d.Exercises))
		copy(out.Exercises, d.Exercises)
	}
	return out
}

// ─── App State ──────────────────────────────────────────────────────────────

// AppState is the whole persisted document.
// Days keep insertion order; they are not kept sorted by date.
type AppState struct {
	Targets MacroTargets `json:"targets"`
	Days    []DayRecord  `json:"days"`
}

// DefaultState returns default targets and a single empty day for today.
func DefaultState(today string) AppState {
	return AppState{
		Targets: DefaultTargets(),
		Days:    []DayRecord{NewDayRecord(today)},
	}
}

// Clone returns a deep copy.
func (s AppState) Clone() AppState {
	out := AppState{Targets: s.Targets}
	if s.Days != nil {
		out.Days = make([]DayRecord, len(s.Days))
		for i, d := range s.Days {
			out.Days[i] = d.Clone()
		}
	}
	return out
}

// Today formats t as an ISO-8601 calendar date.
func Today(t time.Time) string { return t.Format(time.DateOnly) }

// ─── Backups ────────────────────────────────────────────────────────────────

// Backup is a whole-state snapshot saved before a destructive swap.
type Backup struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Reason    string    `json:"reason"`
	Days      int       `json:"days"`
	Data      string    `json:"-"`
}

// ─── Decoding ───────────────────────────────────────────────────────────────

// MergeTargets overlays whatever numeric fields are present in raw onto the
// defaults. Missing or non-numeric fields keep their default.
func MergeTargets(raw json.RawMessage) MacroTargets {
	t := DefaultTargets()
	if len(raw) == 0 {
		return t
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return t
	}
	overlay := func(key string, dst *float64) {
		v, ok := fields[key]
		if !ok {
			return
		}
		var a Amount
		_ = a.UnmarshalJSON(v)
		if a.IsSet() {
			*dst = a.Value()
		}
	}
	overlay("calories", &t.Calories)
	overlay("protein", &t.Protein)
	overlay("carbs", &t.Carbs)
	overlay("fat", &t.Fat)
	overlay("goalWeight", &t.GoalWeight)
	return t
}

type storedDay struct {
	Date      string          `json:"date"`
	Calories  Amount          `json:"calories"`
	Protein   Amount          `json:"protein"`
	Carbs     Amount          `json:"carbs"`
	Fat       Amount          `json:"fat"`
	Exercises json.RawMessage `json:"exercises"`
}

// DecodeStoredState parses the persisted document. Targets overlay defaults
// field by field and every day is defaulted individually: missing intake
// fields stay empty and missing or invalid exercise lists become empty.
// Entries that are not objects are dropped. If no usable day remains a
// fresh day for today is substituted.
func DecodeStoredState(data []byte, today string) (AppState, error) {
	var doc struct {
		Targets json.RawMessage `json:"targets"`
		Days    json.RawMessage `json:"days"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return AppState{}, err
	}

	// A days value that is not a list counts as no days.
	var days []json.RawMessage
	if len(doc.Days) > 0 {
		if err := json.Unmarshal(doc.Days, &days); err != nil {
			days = nil
		}
	}

	state := AppState{Targets: MergeTargets(doc.Targets)}
	for _, raw := range days {
		var sd storedDay
		if err := json.Unmarshal(raw, &sd); err != nil {
			continue
		}
		day := DayRecord{
			Date:      sd.Date,
			Calories:  sd.Calories,
			Protein:   sd.Protein,
			Carbs:     sd.Carbs,
			Fat:       sd.Fat,
			Exercises: []ExerciseEntry{},
		}
		if len(sd.Exercises) > 0 {
			var ex []ExerciseEntry
			if err := json.Unmarshal(sd.Exercises, &ex); err == nil && ex != nil {
				day.Exercises = ex
			}
		}
		state.Days = append(state.Days, day)
	}
	if len(state.Days) == 0 {
		state.Days = []DayRecord{NewDayRecord(today)}
	}
	return state, nil
}
