package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/macrolog/macrolog/internal/domain"
)

// CSVHeader is the first row of every CSV export.
var CSVHeader = []string{"date", "calories", "protein", "carbs", "fat", "exercises(c/t/g/name/wt/sets/reps/dur)"}

// ExerciseSeparator joins packed exercises within one cell.
const ExerciseSeparator = " | "

// PackExercise formats an entry as category/type/group/name/weight/sets/reps/duration.
func PackExercise(e domain.ExerciseEntry) string {
	parts := []string{e.Category, e.Type, e.Group, e.Name}
	for _, f := range domain.ExerciseMetrics {
		parts = append(parts, e.Metric(f).String())
	}
	return strings.Join(parts, "/")
}

// PackExercises joins every entry of a day.
func PackExercises(list []domain.ExerciseEntry) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = PackExercise(e)
	}
	return strings.Join(parts, ExerciseSeparator)
}

// quote wraps a field in double quotes, doubling any inside.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteCSV writes the header and then one row per day in list order.
// Every data field is quoted; encoding/csv only quotes when needed, so
// rows are assembled here.
func WriteCSV(w io.Writer, days []domain.DayRecord) error {
	bw := bufio.NewWriter(w)
	writeRow := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quote(f))
		}
		bw.WriteByte('\n')
	}

	bw.WriteString(strings.Join(CSVHeader, ","))
	bw.WriteByte('\n')
	for _, d := range days {
		row := []string{d.Date}
		for _, f := range domain.DayMacros {
			row = append(row, d.Macro(f).String())
		}
		writeRow(append(row, PackExercises(d.Exercises)))
	}
	return bw.Flush()
}
