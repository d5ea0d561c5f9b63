package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	bodies []string
	err    error
}

func (c *captureSender) SendMessage(ctx context.Context, body string) error {
	if c.err != nil {
		return c.err
	}
	c.bodies = append(c.bodies, body)
	return nil
}

func TestPublishExportSerializesEvent(t *testing.T) {
	sender := &captureSender{}
	p := NewExportProducer(sender)

	event := ExportRequestedEvent{
		ExportJobID: "job-1",
		WeekStart:   "2024-01-08",
		RequestedBy: "admin-1",
		Recipient:   "books@example.com",
		OccurredAt:  time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishExport(context.Background(), event))

	require.Len(t, sender.bodies, 1)
	var decoded ExportRequestedEvent
	require.NoError(t, json.Unmarshal([]byte(sender.bodies[0]), &decoded))
	assert.Equal(t, event, decoded)
}

func TestPublishExportWrapsSenderError(t *testing.T) {
	p := NewExportProducer(&captureSender{err: errors.New("queue down")})

	err := p.PublishExport(context.Background(), ExportRequestedEvent{ExportJobID: "job-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish export event")
}
