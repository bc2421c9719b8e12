package tracker

import (
	"math"
	"sort"

	"github.com/macrolog/macrolog/internal/domain"
)

// WindowSize is how many entries the weekly view covers.
const WindowSize = 7

// LastEntries sorts a copy of days by date (string order, stable) and
// returns the last n. The stored list itself stays in insertion order.
func LastEntries(days []domain.DayRecord, n int) []domain.DayRecord {
	sorted := make([]domain.DayRecord, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	if n >= 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

// Averages holds rounded per-day means.
type Averages struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Count    int     `json:"count"`
}

// WeeklyAverages averages the last WindowSize entries. Empty fields count
// as 0 and the divisor is never below 1.
func WeeklyAverages(days []domain.DayRecord) Averages {
	window := LastEntries(days, WindowSize)
	var cal, pro, carb, fat float64
	for _, d := range window {
		cal += d.Calories.Value()
		pro += d.Protein.Value()
		carb += d.Carbs.Value()
		fat += d.Fat.Value()
	}
	n := float64(max(len(window), 1))
	return Averages{
		Calories: math.Round(cal / n),
		Protein:  math.Round(pro / n),
		Carbs:    math.Round(carb / n),
		Fat:      math.Round(fat / n),
		Count:    len(window),
	}
}

// Series is the chart data for the weekly view.
type Series struct {
	Labels   []string  `json:"labels"`
	Calories []float64 `json:"calories"`
	Protein  []float64 `json:"protein"`
	Carbs    []float64 `json:"carbs"`
	Fat      []float64 `json:"fat"`
}

// ChartSeries returns per-macro series over the last WindowSize entries.
func ChartSeries(days []domain.DayRecord) Series {
	window := LastEntries(days, WindowSize)
	s := Series{
		Labels:   make([]string, 0, len(window)),
		Calories: make([]float64, 0, len(window)),
		Protein:  make([]float64, 0, len(window)),
		Carbs:    make([]float64, 0, len(window)),
		Fat:      make([]float64, 0, len(window)),
	}
	for _, d := range window {
		s.Labels = append(s.Labels, d.Date)
		s.Calories = append(s.Calories, d.Calories.Value())
		s.Protein = append(s.Protein, d.Protein.Value())
		s.Carbs = append(s.Carbs, d.Carbs.Value())
		s.Fat = append(s.Fat, d.Fat.Value())
	}
	return s
}

// Weekly bundles the derived weekly view. It is never persisted.
type Weekly struct {
	Entries  []domain.DayRecord  `json:"entries"`
	Averages Averages            `json:"averages"`
	Series   Series              `json:"series"`
	Targets  domain.MacroTargets `json:"targets"`
}

// BuildWeekly derives the weekly view from a state snapshot.
func BuildWeekly(s domain.AppState) Weekly {
	return Weekly{
		Entries:  LastEntries(s.Days, WindowSize),
		Averages: WeeklyAverages(s.Days),
		Series:   ChartSeries(s.Days),
		Targets:  s.Targets,
	}
}
