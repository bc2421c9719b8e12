package tracker

import "github.com/macrolog/macrolog/internal/domain"

// PrependDay returns days with an empty record for date at the front.
func PrependDay(days []domain.DayRecord, date string) []domain.DayRecord {
	out := make([]domain.DayRecord, 0, len(days)+1)
	out = append(out, domain.NewDayRecord(date))
	return append(out, days...)
}

// RemoveDay returns days without index i. Removing the last remaining
// record yields a single fresh record for today, so the list is never empty.
func RemoveDay(days []domain.DayRecord, i int, today string) []domain.DayRecord {
	if i < 0 || i >= len(days) {
		return days
	}
	out := make([]domain.DayRecord, 0, len(days)-1)
	out = append(out, days[:i]...)
	out = append(out, days[i+1:]...)
	if len(out) == 0 {
		out = append(out, domain.NewDayRecord(today))
	}
	return out
}
