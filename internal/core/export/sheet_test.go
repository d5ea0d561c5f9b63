package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll.service/internal/core/export"
	"payroll.service/internal/core/payroll"
	"payroll.service/internal/core/schedule"
)

func window(t *testing.T) schedule.WeekWindow {
	w, err := schedule.WindowFrom("2024-01-08")
	require.NoError(t, err)
	return w
}

func TestFormatSheetHeader(t *testing.T) {
	sheet := export.FormatSheet(nil, window(t), "Euro Painters")

	require.Len(t, sheet.Rows, 4) // header block only, no data rows
	assert.Empty(t, sheet.Merges)

	assert.Equal(t, []any{"Payroll Report"}, sheet.Rows[0])
	assert.Equal(t, []any{"report for", "Euro Painters"}, sheet.Rows[1])
	assert.Equal(t, []any{"From:", "2024-01-08", "To:", "2024-01-14"}, sheet.Rows[2])
	assert.Equal(t, []any{
		"Name", "Payrate", "Project", "Total Hours", "Total Payment",
		"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11",
		"2024-01-12", "2024-01-13", "2024-01-14",
	}, sheet.Rows[3])

	assert.Len(t, sheet.ColWidths, 12)
}

func TestFormatSheetDataRows(t *testing.T) {
	rows := []payroll.ReportRow{
		{
			EmployeeName: "Ana", Payrate: 25, Project: "Riverside",
			TotalHours: 24, TotalPayment: 600,
			DayHours: [7]float64{8, 8, 0, 8, 0, 0, 0},
		},
	}

	sheet := export.FormatSheet(rows, window(t), "Euro Painters")
	require.Len(t, sheet.Rows, 5)
	assert.Equal(t, []any{
		"Ana", 25.0, "Riverside", 24.0, 600.0,
		8.0, 8.0, 0.0, 8.0, 0.0, 0.0, 0.0,
	}, sheet.Rows[4])
}

func TestFormatSheetMergeRanges(t *testing.T) {
	// three consecutive rows for A (rate 20) over two projects, then a
	// single row for B: A's Name and Payrate cells merge, B's do not.
	rows := []payroll.ReportRow{
		{EmployeeName: "A", Payrate: 20, Project: "p1"},
		{EmployeeName: "A", Payrate: 20, Project: "p1"},
		{EmployeeName: "A", Payrate: 20, Project: "p2"},
		{EmployeeName: "B", Payrate: 30, Project: "p1"},
	}

	sheet := export.FormatSheet(rows, window(t), "Euro Painters")
	assert.Equal(t, []export.MergeRange{
		{StartRow: 4, EndRow: 6, Col: 0},
		{StartRow: 4, EndRow: 6, Col: 1},
	}, sheet.Merges)
}

func TestFormatSheetSameNameDifferentRate(t *testing.T) {
	// a payrate change breaks the merge even when the name repeats
	rows := []payroll.ReportRow{
		{EmployeeName: "A", Payrate: 20, Project: "p1"},
		{EmployeeName: "A", Payrate: 22, Project: "p2"},
	}

	sheet := export.FormatSheet(rows, window(t), "Euro Painters")
	assert.Empty(t, sheet.Merges)
}
