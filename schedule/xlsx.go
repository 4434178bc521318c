package schedule

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXSheet is the worksheet the augmented schedule is written to.
const XLSXSheet = "Sheet1"

// WriteXLSX writes the same table as WriteAugmented to an Excel workbook.
// Derived features are numeric cells; missing features are left empty.
func WriteXLSX(path string, t *Table, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	header, keep := layout(t)
	if err := setRow(f, 1, toCells(header)); err != nil {
		return err
	}

	for i, r := range rows {
		cells := make([]interface{}, 0, len(header))
		for _, c := range keep {
			cells = append(cells, t.Cell(r.Game.Row, c))
		}
		for _, v := range r.derivedValues() {
			if v.Valid {
				cells = append(cells, v.Value)
			} else {
				cells = append(cells, nil)
			}
		}
		cells = append(cells, r.HomeWin)
		if err := setRow(f, i+2, cells); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(XLSXSheet, cell, &cells)
}

func toCells(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
