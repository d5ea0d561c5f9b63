package export

import (
	"payroll.service/internal/core/payroll"
	"payroll.service/internal/core/schedule"
)

// SheetName is the workbook sheet the report is written to.
const SheetName = "Payroll Report"

// headerRows is the number of rows above the first data row: title,
// report label, date range and the column-header row.
const headerRows = 4

// MergeRange is a presentation instruction: one cell spanning the given
// inclusive row range in one column. Coordinates are zero-based.
type MergeRange struct {
	StartRow int `json:"startRow"`
	EndRow   int `json:"endRow"`
	Col      int `json:"col"`
}

// TabularSheet is the structural description of the export: cell values,
// merge ranges and column widths. A serialization layer turns it into a
// binary spreadsheet; this package never touches the binary format.
type TabularSheet struct {
	Name      string
	Rows      [][]any
	Merges    []MergeRange
	ColWidths []float64
}

// FormatSheet lays out payroll rows as the downloadable report. The column
// order and header text are a compatibility surface for downstream
// consumers of the file and must not change:
// Name, Payrate, Project, Total Hours, Total Payment, then the seven
// window dates. Consecutive rows sharing (Name, Payrate) get merged Name
// and Payrate cells, regardless of project. With no rows the sheet is just
// the header block.
func FormatSheet(rows []payroll.ReportRow, window schedule.WeekWindow, reportFor string) TabularSheet {
	days := window.Days()

	header := []any{"Name", "Payrate", "Project", "Total Hours", "Total Payment"}
	for _, d := range days {
		header = append(header, d)
	}

	sheet := TabularSheet{
		Name: SheetName,
		Rows: [][]any{
			{"Payroll Report"},
			{"report for", reportFor},
			{"From:", window.From(), "To:", window.To()},
			header,
		},
		ColWidths: []float64{20, 10, 20, 12, 15, 12, 12, 12, 12, 12, 12, 12},
	}

	for _, row := range rows {
		cells := []any{row.EmployeeName, row.Payrate, row.Project, row.TotalHours, row.TotalPayment}
		for _, h := range row.DayHours {
			cells = append(cells, h)
		}
		sheet.Rows = append(sheet.Rows, cells)
	}

	sheet.Merges = mergeRanges(rows)
	return sheet
}

// mergeRanges scans the data rows once, grouping consecutive rows with an
// identical (name, payrate) pair into merged Name and Payrate cells.
func mergeRanges(rows []payroll.ReportRow) []MergeRange {
	var merges []MergeRange

	start := 0
	for start < len(rows) {
		end := start
		for end+1 < len(rows) &&
			rows[end+1].EmployeeName == rows[start].EmployeeName &&
			rows[end+1].Payrate == rows[start].Payrate {
			end++
		}
		if end > start {
			merges = append(merges,
				MergeRange{StartRow: headerRows + start, EndRow: headerRows + end, Col: 0},
				MergeRange{StartRow: headerRows + start, EndRow: headerRows + end, Col: 1},
			)
		}
		start = end + 1
	}
	return merges
}
