package messaging

import "time"

// ExportRequestedEvent asks the export worker to build and deliver a
// payroll spreadsheet for one reporting week.
type ExportRequestedEvent struct {
	ExportJobID string    `json:"exportJobId"`
	WeekStart   string    `json:"weekStart"`
	RequestedBy string    `json:"requestedBy"`
	Recipient   string    `json:"recipient"`
	OccurredAt  time.Time `json:"occurredAt"`
}
