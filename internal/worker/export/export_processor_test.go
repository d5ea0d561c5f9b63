package export

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll.service/internal/core/model"
	"payroll.service/internal/core/schedule"
)

type fakeReports struct {
	data []byte
	err  error
}

func (f *fakeReports) GenerateSpreadsheet(ctx context.Context, window schedule.WeekWindow) ([]byte, error) {
	return f.data, f.err
}

type fakeExportRepo struct {
	job      *model.ExportJob
	statuses []model.ExportStatus
	retries  []int
}

func (f *fakeExportRepo) CreateExportJob(ctx context.Context, job model.ExportJob) error { return nil }

func (f *fakeExportRepo) GetExportJob(ctx context.Context, id string) (*model.ExportJob, error) {
	return f.job, nil
}

func (f *fakeExportRepo) UpdateExportStatus(ctx context.Context, id string, status model.ExportStatus, retryCount int) error {
	f.statuses = append(f.statuses, status)
	f.retries = append(f.retries, retryCount)
	return nil
}

type fakeEmail struct {
	sent      int
	recipient string
	week      string
	err       error
}

func (f *fakeEmail) SendPayrollReport(ctx context.Context, to, weekStart string, report []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent++
	f.recipient = to
	f.week = weekStart
	return nil
}

func message(body string) types.Message {
	return types.Message{Body: aws.String(body), MessageId: aws.String("m-1"), ReceiptHandle: aws.String("rh-1")}
}

func pendingJob() *model.ExportJob {
	return &model.ExportJob{
		ID:        "job-1",
		WeekStart: "2024-01-08",
		Recipient: "admin@example.com",
		Status:    model.StatusExportPending,
	}
}

func TestProcessDeliversReport(t *testing.T) {
	repo := &fakeExportRepo{job: pendingJob()}
	email := &fakeEmail{}
	p := NewProcessor(&fakeReports{data: []byte("xlsx")}, repo, email)

	retry, delay, err := p.Process(context.Background(), message(`{"exportJobId":"job-1"}`))

	require.NoError(t, err)
	assert.False(t, retry)
	assert.Zero(t, delay)
	assert.Equal(t, 1, email.sent)
	assert.Equal(t, "admin@example.com", email.recipient)
	assert.Equal(t, "2024-01-08", email.week)
	assert.Equal(t, []model.ExportStatus{model.StatusExportProcessing, model.StatusExportCompleted}, repo.statuses)
}

func TestProcessSkipsCompletedJob(t *testing.T) {
	job := pendingJob()
	job.Status = model.StatusExportCompleted
	repo := &fakeExportRepo{job: job}
	email := &fakeEmail{}
	p := NewProcessor(&fakeReports{data: []byte("xlsx")}, repo, email)

	retry, _, err := p.Process(context.Background(), message(`{"exportJobId":"job-1"}`))

	require.NoError(t, err)
	assert.False(t, retry)
	assert.Zero(t, email.sent)
	assert.Empty(t, repo.statuses)
}

func TestProcessRetriesOnMailFailure(t *testing.T) {
	repo := &fakeExportRepo{job: pendingJob()}
	email := &fakeEmail{err: errors.New("ses unavailable")}
	p := NewProcessor(&fakeReports{data: []byte("xlsx")}, repo, email)

	retry, delay, err := p.Process(context.Background(), message(`{"exportJobId":"job-1"}`))

	require.Error(t, err)
	assert.True(t, retry)
	assert.Equal(t, int32(20), delay)
	// PROCESSING then back to PENDING with the bumped retry count.
	assert.Equal(t, []model.ExportStatus{model.StatusExportProcessing, model.StatusExportPending}, repo.statuses)
	assert.Equal(t, []int{0, 1}, repo.retries)
}

func TestProcessDropsMalformedMessage(t *testing.T) {
	repo := &fakeExportRepo{job: pendingJob()}
	p := NewProcessor(&fakeReports{}, repo, &fakeEmail{})

	retry, _, err := p.Process(context.Background(), message(`not-json`))

	require.Error(t, err)
	assert.False(t, retry)
	assert.Empty(t, repo.statuses)
}

func TestCalculateBackoffCaps(t *testing.T) {
	assert.Equal(t, int32(20), calculateBackoff(1))
	assert.Equal(t, int32(80), calculateBackoff(3))
	assert.Equal(t, int32(3600), calculateBackoff(12))
}
