package transfer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/macrolog/macrolog/internal/app/tracker"
	"github.com/macrolog/macrolog/internal/domain"
	"github.com/macrolog/macrolog/internal/infra/export"
)

// Workbook sheet names.
const (
	SheetDays   = "Days"
	SheetWeekly = "Weekly"
)

// WriteXLSX writes a workbook with every day (list order) on one sheet and
// the weekly view (date order) with targets on another.
func WriteXLSX(w io.Writer, state domain.AppState) error {
	f, err := BuildWorkbook(state)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook assembles the workbook in memory.
func BuildWorkbook(state domain.AppState) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetDays); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetWeekly); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	if err := fillDaysSheet(f, state.Days, headerStyle); err != nil {
		return nil, fmt.Errorf("days sheet: %w", err)
	}
	if err := fillWeeklySheet(f, state, headerStyle); err != nil {
		return nil, fmt.Errorf("weekly sheet: %w", err)
	}

	f.SetActiveSheet(0)
	return f, nil
}

func cellValue(a domain.Amount) interface{} {
	if !a.IsSet() {
		return ""
	}
	return a.Value()
}

func fillDaysSheet(f *excelize.File, days []domain.DayRecord, headerStyle int) error {
	header := []interface{}{"Date", "Calories", "Protein", "Carbs", "Fat", "Exercises"}
	if err := f.SetSheetRow(SheetDays, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetDays, "A1", "F1", headerStyle); err != nil {
		return err
	}

	for i, d := range days {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{d.Date}
		for _, m := range domain.DayMacros {
			row = append(row, cellValue(d.Macro(m)))
		}
		row = append(row, export.PackExercises(d.Exercises))
		if err := f.SetSheetRow(SheetDays, cell, &row); err != nil {
			return err
		}
	}
	f.SetColWidth(SheetDays, "A", "A", 12)
	f.SetColWidth(SheetDays, "F", "F", 80)
	return nil
}

func fillWeeklySheet(f *excelize.File, state domain.AppState, headerStyle int) error {
	weekly := tracker.BuildWeekly(state)

	header := []interface{}{"Date", "Calories", "Protein", "Carbs", "Fat"}
	if err := f.SetSheetRow(SheetWeekly, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetWeekly, "A1", "E1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, d := range weekly.Entries {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{d.Date}
		for _, m := range domain.DayMacros {
			values = append(values, cellValue(d.Macro(m)))
		}
		if err := f.SetSheetRow(SheetWeekly, cell, &values); err != nil {
			return err
		}
		row++
	}

	avg := weekly.Averages
	cell, _ := excelize.CoordinatesToCellName(1, row)
	averages := []interface{}{"Average", avg.Calories, avg.Protein, avg.Carbs, avg.Fat}
	if err := f.SetSheetRow(SheetWeekly, cell, &averages); err != nil {
		return err
	}

	t := weekly.Targets
	cell, _ = excelize.CoordinatesToCellName(1, row+1)
	targets := []interface{}{"Target", t.Calories, t.Protein, t.Carbs, t.Fat}
	if err := f.SetSheetRow(SheetWeekly, cell, &targets); err != nil {
		return err
	}
	f.SetColWidth(SheetWeekly, "A", "A", 12)
	return nil
}
