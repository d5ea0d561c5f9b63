package export

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"

	"payroll.service/internal/core/model"
	"payroll.service/internal/core/schedule"
	"payroll.service/internal/core/service"
	"payroll.service/internal/notify"
	"payroll.service/internal/ports/messaging"
	"payroll.service/internal/ports/repository"
)

// ReportBuilder produces the spreadsheet for one reporting week.
type ReportBuilder interface {
	GenerateSpreadsheet(ctx context.Context, window schedule.WeekWindow) ([]byte, error)
}

// ExportProcessor handles queued payroll export jobs: it builds the
// spreadsheet and mails it to the requester.
type ExportProcessor struct {
	reports ReportBuilder
	exports repository.ExportJobRepository
	email   notify.EmailService
}

var _ ReportBuilder = (*service.ReportService)(nil)

// NewProcessor sets up a processor for the export queue.
func NewProcessor(reports ReportBuilder, exports repository.ExportJobRepository, email notify.EmailService) *ExportProcessor {
	return &ExportProcessor{
		reports: reports,
		exports: exports,
		email:   email,
	}
}

// Process handles one export request. Delivery failures are retried
// with exponential backoff; jobs already completed are skipped so a
// redelivered message cannot mail the report twice.
func (p *ExportProcessor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.ExportRequestedEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal export event")
		return false, 0, err // malformed message, do not retry
	}

	job, err := p.exports.GetExportJob(ctx, event.ExportJobID)
	if err != nil {
		return true, 10, fmt.Errorf("failed to get export job %s: %w", event.ExportJobID, err)
	}
	if job == nil {
		log.Ctx(ctx).Error().Str("exportJobId", event.ExportJobID).Msg("Export job not found, dropping message")
		return false, 0, fmt.Errorf("export job %s not found", event.ExportJobID)
	}

	if job.Status == model.StatusExportCompleted {
		log.Ctx(ctx).Info().Str("exportJobId", job.ID).Msg("Export already delivered, skipping")
		return false, 0, nil
	}

	if err := p.exports.UpdateExportStatus(ctx, job.ID, model.StatusExportProcessing, job.RetryCount); err != nil {
		return true, 10, fmt.Errorf("failed to mark export job processing: %w", err)
	}

	window, err := schedule.WindowFrom(job.WeekStart)
	if err != nil {
		p.exports.UpdateExportStatus(ctx, job.ID, model.StatusExportFailed, job.RetryCount)
		return false, 0, fmt.Errorf("export job %s has invalid week start %q: %w", job.ID, job.WeekStart, err)
	}

	report, err := p.reports.GenerateSpreadsheet(ctx, window)
	if err != nil {
		return p.scheduleRetry(ctx, job, fmt.Errorf("failed to generate report: %w", err))
	}

	if err := p.email.SendPayrollReport(ctx, job.Recipient, window.From(), report); err != nil {
		return p.scheduleRetry(ctx, job, fmt.Errorf("failed to mail report: %w", err))
	}

	err = p.exports.UpdateExportStatus(ctx, job.ID, model.StatusExportCompleted, 0)
	if err == nil {
		log.Ctx(ctx).Info().
			Str("exportJobId", job.ID).
			Str("recipient", job.Recipient).
			Msg("Payroll report delivered")
	}
	return false, 0, err
}

func (p *ExportProcessor) scheduleRetry(ctx context.Context, job *model.ExportJob, cause error) (bool, int32, error) {
	newCount := job.RetryCount + 1
	p.exports.UpdateExportStatus(ctx, job.ID, model.StatusExportPending, newCount)
	return true, calculateBackoff(newCount), cause
}

// calculateBackoff grows the retry delay exponentially, capped at an
// hour.
func calculateBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 3600 {
		return 3600
	}
	return backoff
}
