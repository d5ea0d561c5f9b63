package repository

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"payroll.service/internal/core/model"
)

const timesheetColumns = `id, employee_id, date::text, start_time::text, end_time::text,
       lunch_start_time::text, lunch_end_time::text, job_site, description,
       total_hours, COALESCE(is_locked, FALSE), approved`

// PostgresTimesheetRepository is the concrete timesheet store.
type PostgresTimesheetRepository struct {
	DB *sql.DB
}

// NewTimesheetRepository creates a timesheet repository.
func NewTimesheetRepository(db *sql.DB) *PostgresTimesheetRepository {
	return &PostgresTimesheetRepository{DB: db}
}

// GetTimesheet fetches one record, nil when absent.
func (r *PostgresTimesheetRepository) GetTimesheet(ctx context.Context, id string) (*model.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE id = $1`

	t := &model.Timesheet{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.EmployeeID, &t.Date, &t.StartTime, &t.EndTime,
		&t.LunchStartTime, &t.LunchEndTime, &t.JobSite, &t.Description,
		&t.TotalHours, &t.IsLocked, &t.Approved,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// SelectTimesheets lists records, optionally narrowed to one employee and
// a date range, ordered by date ascending. Screens that want a different
// order sort on their side.
func (r *PostgresTimesheetRepository) SelectTimesheets(ctx context.Context, employeeID, from, to string) ([]model.Timesheet, error) {
	if employeeID != "" {
		trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employeeId", employeeID))
	}

	query := `SELECT ` + timesheetColumns + `
              FROM timesheets
              WHERE ($1 = '' OR employee_id = $1)
                AND ($2 = '' OR date >= NULLIF($2, '')::date)
                AND ($3 = '' OR date <= NULLIF($3, '')::date)
              ORDER BY date ASC, id ASC`

	rows, err := r.DB.QueryContext(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheets []model.Timesheet
	for rows.Next() {
		var t model.Timesheet
		if err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.Date, &t.StartTime, &t.EndTime,
			&t.LunchStartTime, &t.LunchEndTime, &t.JobSite, &t.Description,
			&t.TotalHours, &t.IsLocked, &t.Approved,
		); err != nil {
			return nil, err
		}
		sheets = append(sheets, t)
	}
	return sheets, rows.Err()
}

// CreateTimesheet inserts a new record and returns its generated ID.
func (r *PostgresTimesheetRepository) CreateTimesheet(ctx context.Context, t model.Timesheet) (string, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employeeId", t.EmployeeID))

	query := `INSERT INTO timesheets (employee_id, date, start_time, end_time, lunch_start_time, lunch_end_time, job_site, description, total_hours, is_locked, approved)
              VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11)
              RETURNING id`

	var id string
	err := r.DB.QueryRowContext(ctx, query,
		t.EmployeeID, t.Date, t.StartTime, t.EndTime, t.LunchStartTime, t.LunchEndTime,
		t.JobSite, t.Description, t.TotalHours, t.IsLocked, t.Approved,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateTimesheet overwrites a record's entry fields. Locked rows are
// left untouched and reported as ErrLocked.
func (r *PostgresTimesheetRepository) UpdateTimesheet(ctx context.Context, t model.Timesheet) error {
	query := `UPDATE timesheets
              SET date = $1::date,
                  start_time = $2,
                  end_time = $3,
                  lunch_start_time = $4,
                  lunch_end_time = $5,
                  job_site = $6,
                  description = $7,
                  total_hours = $8
              WHERE id = $9 AND COALESCE(is_locked, FALSE) = FALSE`

	res, err := r.DB.ExecContext(ctx, query,
		t.Date, t.StartTime, t.EndTime, t.LunchStartTime, t.LunchEndTime,
		t.JobSite, t.Description, t.TotalHours, t.ID,
	)
	if err != nil {
		return err
	}
	return lockedUnlessAffected(res)
}

// DeleteTimesheet removes a record unless it is locked.
func (r *PostgresTimesheetRepository) DeleteTimesheet(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM timesheets WHERE id = $1 AND COALESCE(is_locked, FALSE) = FALSE`, id)
	if err != nil {
		return err
	}
	return lockedUnlessAffected(res)
}

// SetLocked toggles the lock flag.
func (r *PostgresTimesheetRepository) SetLocked(ctx context.Context, id string, locked bool) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE timesheets SET is_locked = $1 WHERE id = $2`, locked, id)
	return err
}

// SetApproved toggles the approval flag.
func (r *PostgresTimesheetRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE timesheets SET approved = $1 WHERE id = $2`, approved, id)
	return err
}

// lockedUnlessAffected maps a zero-row mutation to ErrLocked: the guarded
// UPDATE/DELETE statements only skip rows when the lock filter blocked
// them (or the row is gone, which callers treat the same way).
func lockedUnlessAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLocked
	}
	return nil
}
