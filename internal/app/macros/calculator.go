// Package macros derives macro-nutrient targets from a goal weight and a
// calorie budget, and checks entered macros against entered calories.
// Everything here is pure.
package macros

import (
	"math"

	"github.com/macrolog/macrolog/internal/domain"
)

// Energy per gram.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// FatShare is the fraction of calories assigned to fat.
const FatShare = 0.25

// ComputeTargets returns targets for goalWeight (lb) and calories.
// Protein is 1 g per lb, fat is a quarter of the calories and carbs take
// the remainder, floored at 0. All outputs are rounded after being derived
// from unrounded intermediates. ok is false when either input is zero.
func ComputeTargets(goalWeight, calories float64) (domain.MacroTargets, bool) {
	if goalWeight == 0 || calories == 0 || math.IsNaN(goalWeight) || math.IsNaN(calories) {
		return domain.MacroTargets{}, false
	}

	protein := goalWeight
	fatKcal := FatShare * calories
	fat := fatKcal / KcalPerGramFat
	carbKcal := calories - (protein*KcalPerGramProtein + fatKcal)
	carbs := math.Max(0, math.Round(carbKcal/KcalPerGramCarbs))

	return domain.MacroTargets{
		Calories:   math.Round(calories),
		Protein:    math.Round(protein),
		Carbs:      carbs,
		Fat:        math.Round(fat),
		GoalWeight: goalWeight,
	}, true
}

// CaloriesFromMacros returns the energy implied by the given grams.
func CaloriesFromMacros(protein, carbs, fat float64) float64 {
	return protein*KcalPerGramProtein + carbs*KcalPerGramCarbs + fat*KcalPerGramFat
}

// ─── Delta Indicator ────────────────────────────────────────────────────────

// DeltaStatus classifies entered calories against entered macros.
type DeltaStatus string

const (
	DeltaMatch    DeltaStatus = "match"
	DeltaMismatch DeltaStatus = "mismatch"
)

// MacroDelta compares a day's entered calories with its macros.
type MacroDelta struct {
	Entered    float64     `json:"entered"`
	FromMacros float64     `json:"from_macros"`
	Delta      float64     `json:"delta"` // FromMacros - Entered, signed
	Status     DeltaStatus `json:"status"`
}

// Sign returns "+", "-" or "" for the delta.
func (d MacroDelta) Sign() string {
	switch {
	case d.Delta > 0:
		return "+"
	case d.Delta < 0:
		return "-"
	}
	return ""
}

// Delta compares day.Calories with the calories implied by its macros.
// Empty macros count as 0. ok is false when calories are empty or no
// macro has been entered yet.
func Delta(day domain.DayRecord) (MacroDelta, bool) {
	if !day.Calories.IsSet() {
		return MacroDelta{}, false
	}
	if !day.Protein.IsSet() && !day.Carbs.IsSet() && !day.Fat.IsSet() {
		return MacroDelta{}, false
	}

	implied := CaloriesFromMacros(day.Protein.Value(), day.Carbs.Value(), day.Fat.Value())
	d := MacroDelta{
		Entered:    day.Calories.Value(),
		FromMacros: implied,
		Delta:      implied - day.Calories.Value(),
		Status:     DeltaMatch,
	}
	if d.Delta != 0 {
		d.Status = DeltaMismatch
	}
	return d, true
}
