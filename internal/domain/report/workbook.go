package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook emits the row-sets as a multi-sheet XLSX workbook, one
// named sheet per row-set, in order.
// PRE: sheets is non-empty; sheet names are unique
// POST: Workbook written to w, or a hard error with nothing usable
// written; callers must not offer a partial file for download
func WriteWorkbook(w io.Writer, sheets []RowSet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, rs := range sheets {
		if i == 0 {
			// excelize creates the first sheet for us; rename it.
			if err := f.SetSheetName(f.GetSheetName(0), rs.Name); err != nil {
				return fmt.Errorf("name sheet %s: %w", rs.Name, err)
			}
		} else {
			if _, err := f.NewSheet(rs.Name); err != nil {
				return fmt.Errorf("add sheet %s: %w", rs.Name, err)
			}
		}
		for rowIdx, row := range rs.Rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("sheet %s row %d: %w", rs.Name, rowIdx+1, err)
			}
			if err := f.SetSheetRow(rs.Name, cell, &row); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", rs.Name, rowIdx+1, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
