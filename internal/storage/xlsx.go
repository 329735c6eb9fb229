package storage

import (
	"fmt"
	"sort"

	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	flipSheet    = "FlipTimes"
)

// WriteFlipXLSX writes the flip matrix to a workbook: a summary sheet with
// the run parameters and a sheet with the matrix, angles in the first row
// and column.
func WriteFlipXLSX(path string, m *dynamo.FlipMatrix, p dynamo.Params, stats map[string]float64) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Parameter", "Value"},
		{"grid_side", m.Side},
		{"step_count", p.StepCount},
		{"dt", p.Dt},
		{"total_time", p.TotalTime},
		{"rod_length", p.Constants.RodLength},
		{"mass", p.Constants.Mass},
		{"gravity", p.Constants.Gravity},
	}
	for _, k := range sortedKeys(stats) {
		rows = append(rows, []interface{}{k, stats[k]})
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(flipSheet); err != nil {
		return err
	}
	if err := f.SetCellValue(flipSheet, "A1", "theta1\\theta2"); err != nil {
		return err
	}
	for j, a := range m.Angles {
		cell, _ := excelize.CoordinatesToCellName(j+2, 1)
		if err := f.SetCellValue(flipSheet, cell, a); err != nil {
			return err
		}
	}
	for i := 0; i < m.Side; i++ {
		row := make([]interface{}, 0, m.Side+1)
		row = append(row, m.Angles[i])
		for _, v := range m.Row(i) {
			row = append(row, v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(flipSheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	return f.SaveAs(path)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
