package tracker

import (
	"fmt"

	"github.com/macrolog/macrolog/internal/domain"
	"github.com/macrolog/macrolog/internal/infra/catalog"
)

// Selector fields of an exercise entry.
const (
	FieldCategory = "category"
	FieldType     = "type"
	FieldGroup    = "group"
	FieldName     = "name"
)

func selectionOf(e domain.ExerciseEntry) catalog.Selection {
	return catalog.Selection{Category: e.Category, Type: e.Type, Group: e.Group, Name: e.Name}
}

func applySelection(e *domain.ExerciseEntry, s catalog.Selection) {
	e.Category, e.Type, e.Group, e.Name = s.Category, s.Type, s.Group, s.Name
}

// clearCardio drops metrics that do not apply to cardio.
func clearCardio(e *domain.ExerciseEntry) {
	if !catalog.IsCardio(e.Category) {
		return
	}
	e.Weight, e.Sets, e.Reps = domain.Empty(), domain.Empty(), domain.Empty()
}

// EditExercise applies one field edit to list[j] and returns the new list.
// Selector edits cascade: category resets type/group/name, type resets
// group/name, group resets name. Choosing catalog.SelectAll as the name
// expands the entry in place. Metric values are clamped; weight, sets and
// reps stay empty for cardio.
func EditExercise(list []domain.ExerciseEntry, j int, field, value string) ([]domain.ExerciseEntry, error) {
	if j < 0 || j >= len(list) {
		return nil, fmt.Errorf("%w: index %d", domain.ErrExerciseNotFound, j)
	}
	out := make([]domain.ExerciseEntry, len(list))
	copy(out, list)
	e := &out[j]

	switch field {
	case FieldCategory:
		applySelection(e, selectionOf(*e).WithCategory(value))
		clearCardio(e)
		return out, nil
	case FieldType:
		applySelection(e, selectionOf(*e).WithType(value))
		return out, nil
	case FieldGroup:
		applySelection(e, selectionOf(*e).WithGroup(value))
		return out, nil
	case FieldName:
		if value == catalog.SelectAll {
			return ExpandEntry(out, j), nil
		}
		applySelection(e, selectionOf(*e).WithName(value))
		return out, nil
	}

	f, err := domain.ParseField(field)
	if err != nil || !f.IsExerciseMetric() {
		return nil, fmt.Errorf("%w: exercise field %q", domain.ErrUnknownField, field)
	}
	if catalog.IsCardio(e.Category) && f != domain.FieldDuration {
		return out, nil
	}
	if err := e.SetMetric(f, domain.Clamp(f, value)); err != nil {
		return nil, err
	}
	return out, nil
}

// ExpandEntry replaces list[j] with one entry per exercise in its group,
// keeping category/type/group and leaving every metric empty. Later
// entries shift down. When the group has no exercises the list is
// returned unchanged.
func ExpandEntry(list []domain.ExerciseEntry, j int) []domain.ExerciseEntry {
	if j < 0 || j >= len(list) {
		return list
	}
	expanded := selectionOf(list[j]).Expand()
	if len(expanded) == 0 {
		return list
	}

	out := make([]domain.ExerciseEntry, 0, len(list)-1+len(expanded))
	out = append(out, list[:j]...)
	for _, sel := range expanded {
		e := list[j]
		e.ClearMetrics()
		applySelection(&e, sel)
		out = append(out, e)
	}
	return append(out, list[j+1:]...)
}

// RemoveExercise returns list without index j.
func RemoveExercise(list []domain.ExerciseEntry, j int) ([]domain.ExerciseEntry, error) {
	if j < 0 || j >= len(list) {
		return nil, fmt.Errorf("%w: index %d", domain.ErrExerciseNotFound, j)
	}
	out := make([]domain.ExerciseEntry, 0, len(list)-1)
	out = append(out, list[:j]...)
	return append(out, list[j+1:]...), nil
}
