package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"payroll.service/internal/core/model"
	"payroll.service/internal/core/timesheet"
)

const employeeColumns = `id, employee_number, COALESCE(name, ''), email, phone, position, employment_type, job, payrate, COALESCE(status, ''), start_date`

// PostgresEmployeeRepository is the concrete employee store.
type PostgresEmployeeRepository struct {
	DB         *sql.DB
	Timesheets TimesheetRepository
}

// NewEmployeeRepository creates an employee repository. The timesheet
// repository is used by the combined payroll query.
func NewEmployeeRepository(db *sql.DB, timesheets TimesheetRepository) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{DB: db, Timesheets: timesheets}
}

// SelectEmployees lists employees, optionally narrowed by a name search
// and a status, ordered by name.
func (r *PostgresEmployeeRepository) SelectEmployees(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error) {
	query := `SELECT ` + employeeColumns + `
              FROM employees
              WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
                AND ($2 = '' OR status = $2)
              ORDER BY name ASC`

	rows, err := r.DB.QueryContext(ctx, query, filter.SearchName, string(filter.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// GetEmployee fetches one employee profile, nil when absent.
func (r *PostgresEmployeeRepository) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employeeId", id))

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e := &model.Employee{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.EmployeeNumber, &e.Name, &e.Email, &e.Phone, &e.Position,
		&e.EmploymentType, &e.JobID, &e.Payrate, &e.Status, &e.StartDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateEmployee inserts a new worker profile. The row ID is the
// identity-provider user ID and comes with the record.
func (r *PostgresEmployeeRepository) CreateEmployee(ctx context.Context, e model.Employee) error {
	query := `INSERT INTO employees (id, name, email, phone, position, employment_type, job, payrate, status, start_date)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.Email, e.Phone, e.Position, e.EmploymentType,
		e.JobID, e.Payrate, string(e.Status), e.StartDate,
	)
	return err
}

// UpdateEmployee overwrites the mutable profile fields.
func (r *PostgresEmployeeRepository) UpdateEmployee(ctx context.Context, e model.Employee) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employeeId", e.ID))

	query := `UPDATE employees
              SET name = $1,
                  email = $2,
                  phone = $3,
                  position = $4,
                  employment_type = $5,
                  job = $6,
                  payrate = $7,
                  status = $8,
                  start_date = $9
              WHERE id = $10`

	_, err := r.DB.ExecContext(ctx, query,
		e.Name, e.Email, e.Phone, e.Position, e.EmploymentType,
		e.JobID, e.Payrate, string(e.Status), e.StartDate, e.ID,
	)
	return err
}

// GetEmployeesWithTimesheets returns one page of employees, each carrying
// their timesheets for the reporting week, plus the unpaged total. Week
// totals come from the stored per-entry hours, never recomputed.
func (r *PostgresEmployeeRepository) GetEmployeesWithTimesheets(ctx context.Context, searchName string, status model.EmployeeStatus, pageLimit, pageNumber int, weekStart, weekEnd string) ([]model.EmployeeTimesheets, int, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.weekStart", weekStart))

	countQuery := `SELECT COUNT(*)
                   FROM employees
                   WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
                     AND ($2 = '' OR status = $2)`

	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, searchName, string(status)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	if pageLimit <= 0 {
		pageLimit = 10
	}
	if pageNumber <= 0 {
		pageNumber = 1
	}
	offset := (pageNumber - 1) * pageLimit

	query := `SELECT ` + employeeColumns + `
              FROM employees
              WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
                AND ($2 = '' OR status = $2)
              ORDER BY name ASC
              LIMIT $3 OFFSET $4`

	rows, err := r.DB.QueryContext(ctx, query, searchName, string(status), pageLimit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	employees, err := scanEmployees(rows)
	if err != nil {
		return nil, 0, err
	}

	result := make([]model.EmployeeTimesheets, 0, len(employees))
	for _, e := range employees {
		sheets, err := r.Timesheets.SelectTimesheets(ctx, e.ID, weekStart, weekEnd)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load timesheets for employee %s: %w", e.ID, err)
		}
		result = append(result, model.EmployeeTimesheets{
			Employee:   e,
			Timesheets: sheets,
			TotalHours: timesheet.SumHours(sheets),
		})
	}
	return result, total, nil
}

func scanEmployees(rows *sql.Rows) ([]model.Employee, error) {
	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(
			&e.ID, &e.EmployeeNumber, &e.Name, &e.Email, &e.Phone, &e.Position,
			&e.EmploymentType, &e.JobID, &e.Payrate, &e.Status, &e.StartDate,
		); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
