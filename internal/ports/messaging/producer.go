package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ExportProducer serializes export events and hands them to the sender.
type ExportProducer struct {
	sender MessageSender
}

// NewExportProducer creates a producer over the given sender.
func NewExportProducer(sender MessageSender) *ExportProducer {
	return &ExportProducer{sender: sender}
}

// PublishExport enqueues an export request for the worker.
func (p *ExportProducer) PublishExport(ctx context.Context, event ExportRequestedEvent) error {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("app.exportJobId", event.ExportJobID),
		attribute.String("app.weekStart", event.WeekStart),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal export event: %w", err)
	}

	if err := p.sender.SendMessage(ctx, string(body)); err != nil {
		return fmt.Errorf("failed to publish export event: %w", err)
	}

	log.Ctx(ctx).Info().
		Str("exportJobId", event.ExportJobID).
		Str("weekStart", event.WeekStart).
		Msg("Export request published")
	return nil
}
