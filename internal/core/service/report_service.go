package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"payroll.service/internal/core/export"
	"payroll.service/internal/core/model"
	"payroll.service/internal/core/payroll"
	"payroll.service/internal/core/schedule"
	"payroll.service/internal/ports/repository"
	"payroll.service/pkg/spreadsheet"
)

// ReportService assembles weekly payroll reports from stored data.
type ReportService struct {
	employees  repository.EmployeeRepository
	timesheets repository.TimesheetRepository
	jobs       repository.JobRepository
	company    string
}

func NewReportService(employees repository.EmployeeRepository, timesheets repository.TimesheetRepository, jobs repository.JobRepository, company string) *ReportService {
	return &ReportService{
		employees:  employees,
		timesheets: timesheets,
		jobs:       jobs,
		company:    company,
	}
}

// BuildWeek computes the payroll rows for one reporting week.
func (s *ReportService) BuildWeek(ctx context.Context, window schedule.WeekWindow) ([]payroll.ReportRow, error) {
	tracer := otel.Tracer("report-service")
	ctx, span := tracer.Start(ctx, "build_week_report")
	defer span.End()
	span.SetAttributes(attribute.String("app.weekStart", window.From()))

	employees, err := s.employees.SelectEmployees(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	sheets, err := s.timesheets.SelectTimesheets(ctx, "", window.From(), window.To())
	if err != nil {
		return nil, fmt.Errorf("failed to load timesheets: %w", err)
	}

	byEmployee := make(map[string][]model.Timesheet)
	for _, t := range sheets {
		byEmployee[t.EmployeeID] = append(byEmployee[t.EmployeeID], t)
	}

	rows := payroll.BuildReport(employees, byEmployee, window)

	names, err := s.jobs.JobNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load project names: %w", err)
	}
	payroll.ApplyProjectNames(rows, names)

	return rows, nil
}

// GenerateSpreadsheet renders the weekly report as an xlsx workbook.
func (s *ReportService) GenerateSpreadsheet(ctx context.Context, window schedule.WeekWindow) ([]byte, error) {
	rows, err := s.BuildWeek(ctx, window)
	if err != nil {
		return nil, err
	}
	return spreadsheet.Write(export.FormatSheet(rows, window, s.company))
}
