package payroll

import (
	"strings"

	"payroll.service/internal/core/model"
	"payroll.service/internal/core/schedule"
	"payroll.service/internal/core/timesheet"
)

// UnassignedProject is the bucket key for timesheets without a job site.
// Hours booked against no project are reported here, never dropped.
const UnassignedProject = ""

// DayHours is one date's summed hours for an employee-project pair.
type DayHours struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// ReportRow is one employee-project aggregation over a week window. The
// DayHours vector always has seven entries, Monday through Sunday.
type ReportRow struct {
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	Payrate      float64    `json:"payrate"`
	Project      string     `json:"project"`
	TotalHours   float64    `json:"totalHours"`
	TotalPayment float64    `json:"totalPayment"`
	DayHours     [7]float64 `json:"dayHours"`
	Days         []DayHours `json:"days"`
}

// BuildReport aggregates each employee's timesheets into per-project rows
// for the given week. It is pure: callers fetch employees and timesheets
// first and the function never touches storage. Rows keep the employees'
// input order, and within an employee, the first-seen order of projects in
// that employee's records. Records outside the window are skipped; missing
// payrates count as zero.
func BuildReport(employees []model.Employee, byEmployee map[string][]model.Timesheet, window schedule.WeekWindow) []ReportRow {
	days := window.Days()
	var rows []ReportRow

	for _, emp := range employees {
		payrate := 0.0
		if emp.Payrate != nil {
			payrate = *emp.Payrate
		}

		projectIdx := make(map[string]int)
		var projects []string
		byProject := make(map[string][]model.Timesheet)

		for _, ts := range byEmployee[emp.ID] {
			if !window.Contains(ts.Date) {
				continue
			}
			key := UnassignedProject
			if ts.JobSite != nil {
				key = *ts.JobSite
			}
			if _, ok := projectIdx[key]; !ok {
				projectIdx[key] = len(projects)
				projects = append(projects, key)
			}
			byProject[key] = append(byProject[key], ts)
		}

		for _, project := range projects {
			records := byProject[project]
			row := ReportRow{
				EmployeeID:   emp.ID,
				EmployeeName: emp.Name,
				Payrate:      payrate,
				Project:      project,
			}
			for i, day := range days {
				var dayRecords []model.Timesheet
				for _, ts := range records {
					if ts.Date == day {
						dayRecords = append(dayRecords, ts)
					}
				}
				hours := timesheet.SumHours(dayRecords)
				row.DayHours[i] = hours
				row.Days = append(row.Days, DayHours{Date: day, Hours: hours})
				row.TotalHours += hours
			}
			row.TotalPayment = row.TotalHours * payrate
			rows = append(rows, row)
		}
	}
	return rows
}

// ApplyProjectNames swaps raw job-site keys for display names where a
// mapping exists. Unknown keys and the unassigned bucket pass through.
func ApplyProjectNames(rows []ReportRow, names map[string]string) {
	for i := range rows {
		if name, ok := names[rows[i].Project]; ok {
			rows[i].Project = strings.TrimSpace(name)
		}
	}
}

// Summary holds the headline numbers shown above the payroll table.
type Summary struct {
	TotalHours      float64 `json:"totalHours"`
	ActiveEmployees int     `json:"activeEmployees"`
	AverageHours    float64 `json:"averageHours"`
}

// Summarize totals the week's hours and averages them over the number of
// active employees actually present.
func Summarize(data []model.EmployeeTimesheets) Summary {
	var s Summary
	for _, et := range data {
		s.TotalHours += et.TotalHours
		if et.Status == model.StatusActive {
			s.ActiveEmployees++
		}
	}
	if s.ActiveEmployees > 0 {
		s.AverageHours = s.TotalHours / float64(s.ActiveEmployees)
	}
	return s
}
