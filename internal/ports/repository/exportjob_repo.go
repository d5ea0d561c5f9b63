package repository

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"payroll.service/internal/core/model"
)

// PostgresExportJobRepository tracks queued payroll exports.
type PostgresExportJobRepository struct {
	DB *sql.DB
}

// NewExportJobRepository creates an export job repository.
func NewExportJobRepository(db *sql.DB) *PostgresExportJobRepository {
	return &PostgresExportJobRepository{DB: db}
}

// CreateExportJob records a freshly enqueued export.
func (r *PostgresExportJobRepository) CreateExportJob(ctx context.Context, job model.ExportJob) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.exportJobId", job.ID))

	query := `INSERT INTO export_jobs (id, week_start, requested_by, recipient, status, retry_count)
              VALUES ($1, $2::date, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctx, query,
		job.ID, job.WeekStart, job.RequestedBy, job.Recipient, string(job.Status), job.RetryCount)
	return err
}

// GetExportJob fetches one export job, nil when absent.
func (r *PostgresExportJobRepository) GetExportJob(ctx context.Context, id string) (*model.ExportJob, error) {
	query := `SELECT id, week_start::text, requested_by, recipient, status, retry_count
              FROM export_jobs WHERE id = $1`

	job := &model.ExportJob{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&job.ID, &job.WeekStart, &job.RequestedBy, &job.Recipient, &job.Status, &job.RetryCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateExportStatus moves a job through its lifecycle and records how
// many delivery attempts have been made.
func (r *PostgresExportJobRepository) UpdateExportStatus(ctx context.Context, id string, status model.ExportStatus, retryCount int) error {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("app.exportJobId", id),
		attribute.String("app.exportStatus", string(status)),
	)

	_, err := r.DB.ExecContext(ctx,
		`UPDATE export_jobs SET status = $1, retry_count = $2, updated_at = NOW() WHERE id = $3`,
		string(status), retryCount, id)
	return err
}
