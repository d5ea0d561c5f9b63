package repository

import (
	"context"
	"database/sql"

	"payroll.service/internal/core/model"
)

// PostgresJobRepository reads the projects table.
type PostgresJobRepository struct {
	DB *sql.DB
}

// NewJobRepository creates a job repository.
func NewJobRepository(db *sql.DB) *PostgresJobRepository {
	return &PostgresJobRepository{DB: db}
}

// SelectJobs lists all projects ordered by name.
func (r *PostgresJobRepository) SelectJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM jobs ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.Name); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// JobNames returns the project ID to name mapping used when rendering
// payroll rows.
func (r *PostgresJobRepository) JobNames(ctx context.Context) (map[string]string, error) {
	jobs, err := r.SelectJobs(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(jobs))
	for _, j := range jobs {
		names[j.ID] = j.Name
	}
	return names, nil
}
