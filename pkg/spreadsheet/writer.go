package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"payroll.service/internal/core/export"
)

// Write serializes a TabularSheet into xlsx bytes. All layout decisions
// (cell values, merges, widths) were made upstream; this is encoding only.
func Write(sheet export.TabularSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for i := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet.Name, cell, &sheet.Rows[i]); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	for _, m := range sheet.Merges {
		start, err := excelize.CoordinatesToCellName(m.Col+1, m.StartRow+1)
		if err != nil {
			return nil, err
		}
		end, err := excelize.CoordinatesToCellName(m.Col+1, m.EndRow+1)
		if err != nil {
			return nil, err
		}
		if err := f.MergeCell(sheet.Name, start, end); err != nil {
			return nil, fmt.Errorf("failed to merge %s:%s: %w", start, end, err)
		}
	}

	for i, width := range sheet.ColWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet.Name, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
