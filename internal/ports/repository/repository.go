package repository

import (
	"context"
	"errors"

	"payroll.service/internal/core/model"
)

// ErrLocked is returned when a mutation targets a locked timesheet.
// Locked records are never changed or deleted.
var ErrLocked = errors.New("timesheet is locked")

// EmployeeFilter narrows employee queries.
type EmployeeFilter struct {
	SearchName string
	Status     model.EmployeeStatus
}

// EmployeeRepository is the read/write contract for worker profiles.
type EmployeeRepository interface {
	SelectEmployees(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error)
	GetEmployee(ctx context.Context, id string) (*model.Employee, error)
	CreateEmployee(ctx context.Context, e model.Employee) error
	UpdateEmployee(ctx context.Context, e model.Employee) error
	GetEmployeesWithTimesheets(ctx context.Context, searchName string, status model.EmployeeStatus, pageLimit, pageNumber int, weekStart, weekEnd string) ([]model.EmployeeTimesheets, int, error)
}

// TimesheetRepository is the contract for clocked work sessions.
type TimesheetRepository interface {
	GetTimesheet(ctx context.Context, id string) (*model.Timesheet, error)
	SelectTimesheets(ctx context.Context, employeeID, from, to string) ([]model.Timesheet, error)
	CreateTimesheet(ctx context.Context, t model.Timesheet) (string, error)
	UpdateTimesheet(ctx context.Context, t model.Timesheet) error
	DeleteTimesheet(ctx context.Context, id string) error
	SetLocked(ctx context.Context, id string, locked bool) error
	SetApproved(ctx context.Context, id string, approved bool) error
}

// JobRepository reads projects / job sites.
type JobRepository interface {
	SelectJobs(ctx context.Context) ([]model.Job, error)
	JobNames(ctx context.Context) (map[string]string, error)
}

// ExportJobRepository tracks queued payroll exports.
type ExportJobRepository interface {
	CreateExportJob(ctx context.Context, job model.ExportJob) error
	GetExportJob(ctx context.Context, id string) (*model.ExportJob, error)
	UpdateExportStatus(ctx context.Context, id string, status model.ExportStatus, retryCount int) error
}
