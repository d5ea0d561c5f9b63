package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll.service/internal/core/model"
	"payroll.service/internal/core/payroll"
	"payroll.service/internal/core/schedule"
	"payroll.service/internal/core/timesheet"
)

func ptr[T any](v T) *T { return &v }

// week of Monday 2024-01-08.
func window(t *testing.T) schedule.WeekWindow {
	w, err := schedule.WindowFrom("2024-01-10")
	require.NoError(t, err)
	return w
}

func ts(employeeID, date string, hours float64, jobSite *string) model.Timesheet {
	return model.Timesheet{
		EmployeeID: employeeID,
		Date:       date,
		TotalHours: &hours,
		JobSite:    jobSite,
	}
}

func TestBuildReportTotals(t *testing.T) {
	emp := model.Employee{ID: "e1", Name: "Ana", Payrate: ptr(25.0), Status: model.StatusActive}
	site := ptr("paint-job")
	sheets := map[string][]model.Timesheet{
		"e1": {
			ts("e1", "2024-01-08", 8, site),
			ts("e1", "2024-01-09", 8, site),
			ts("e1", "2024-01-11", 8, site),
		},
	}

	rows := payroll.BuildReport([]model.Employee{emp}, sheets, window(t))
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Ana", row.EmployeeName)
	assert.Equal(t, "paint-job", row.Project)
	assert.InDelta(t, 24, row.TotalHours, 1e-9)
	assert.InDelta(t, 600, row.TotalPayment, 1e-9)
	assert.Equal(t, [7]float64{8, 8, 0, 8, 0, 0, 0}, row.DayHours)

	require.Len(t, row.Days, 7)
	assert.Equal(t, "2024-01-08", row.Days[0].Date)
	assert.Equal(t, "2024-01-14", row.Days[6].Date)
}

func TestBuildReportUnassignedBucket(t *testing.T) {
	emp := model.Employee{ID: "e1", Name: "Ana", Payrate: ptr(10.0)}
	sheets := map[string][]model.Timesheet{
		"e1": {
			ts("e1", "2024-01-08", 4, ptr("site-a")),
			ts("e1", "2024-01-08", 3, nil), // no job site: must not be dropped
			ts("e1", "2024-01-09", 2, nil),
		},
	}

	rows := payroll.BuildReport([]model.Employee{emp}, sheets, window(t))
	require.Len(t, rows, 2)
	assert.Equal(t, "site-a", rows[0].Project)
	assert.Equal(t, payroll.UnassignedProject, rows[1].Project)

	// hours are conserved across project buckets
	var total float64
	for _, r := range rows {
		total += r.TotalHours
	}
	assert.InDelta(t, timesheet.SumHours(sheets["e1"]), total, 1e-9)
}

func TestBuildReportWindowFiltering(t *testing.T) {
	emp := model.Employee{ID: "e1", Name: "Ana", Payrate: ptr(10.0)}
	sheets := map[string][]model.Timesheet{
		"e1": {
			ts("e1", "2024-01-07", 8, nil), // previous Sunday, outside
			ts("e1", "2024-01-08", 5, nil),
			ts("e1", "2024-01-14", 2, nil), // window Sunday, inside
			ts("e1", "2024-01-15", 8, nil), // next Monday, outside
		},
	}

	rows := payroll.BuildReport([]model.Employee{emp}, sheets, window(t))
	require.Len(t, rows, 1)
	assert.InDelta(t, 7, rows[0].TotalHours, 1e-9)
}

func TestBuildReportOrdering(t *testing.T) {
	employees := []model.Employee{
		{ID: "e2", Name: "Bo", Payrate: ptr(30.0)},
		{ID: "e1", Name: "Ana", Payrate: ptr(20.0)},
	}
	sheets := map[string][]model.Timesheet{
		"e1": {
			ts("e1", "2024-01-09", 2, ptr("site-b")),
			ts("e1", "2024-01-08", 2, ptr("site-a")),
		},
		"e2": {ts("e2", "2024-01-08", 6, ptr("site-a"))},
	}

	rows := payroll.BuildReport(employees, sheets, window(t))
	require.Len(t, rows, 3)

	// employee order follows input order, projects follow first-seen order
	assert.Equal(t, "Bo", rows[0].EmployeeName)
	assert.Equal(t, "Ana", rows[1].EmployeeName)
	assert.Equal(t, "site-b", rows[1].Project)
	assert.Equal(t, "site-a", rows[2].Project)
}

func TestBuildReportMissingPayrate(t *testing.T) {
	emp := model.Employee{ID: "e1", Name: "Ana"} // no payrate
	sheets := map[string][]model.Timesheet{
		"e1": {ts("e1", "2024-01-08", 8, nil)},
	}

	rows := payroll.BuildReport([]model.Employee{emp}, sheets, window(t))
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].Payrate)
	assert.Zero(t, rows[0].TotalPayment)
	assert.InDelta(t, 8, rows[0].TotalHours, 1e-9)
}

func TestBuildReportEmptyInput(t *testing.T) {
	assert.Empty(t, payroll.BuildReport(nil, nil, window(t)))
}

func TestApplyProjectNames(t *testing.T) {
	rows := []payroll.ReportRow{
		{Project: "job-1"},
		{Project: "job-2"},
		{Project: payroll.UnassignedProject},
	}
	payroll.ApplyProjectNames(rows, map[string]string{"job-1": " Riverside Duplex "})

	assert.Equal(t, "Riverside Duplex", rows[0].Project)
	assert.Equal(t, "job-2", rows[1].Project)
	assert.Equal(t, payroll.UnassignedProject, rows[2].Project)
}

func TestSummarize(t *testing.T) {
	data := []model.EmployeeTimesheets{
		{Employee: model.Employee{Status: model.StatusActive}, TotalHours: 30},
		{Employee: model.Employee{Status: model.StatusActive}, TotalHours: 10},
		{Employee: model.Employee{Status: model.StatusOnLeave}, TotalHours: 0},
	}

	s := payroll.Summarize(data)
	assert.InDelta(t, 40, s.TotalHours, 1e-9)
	assert.Equal(t, 2, s.ActiveEmployees)
	// average is over the actual active headcount
	assert.InDelta(t, 20, s.AverageHours, 1e-9)

	assert.Zero(t, payroll.Summarize(nil).AverageHours)
}
