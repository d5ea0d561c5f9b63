package messaging

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"payroll.service/pkg/telemetry"
)

// SQSSender delivers message bodies to one SQS queue, carrying the
// current trace context in the message attributes.
type SQSSender struct {
	client   SQSClient
	queueURL string
}

// NewSQSSender creates a sender bound to a queue URL.
func NewSQSSender(client SQSClient, queueURL string) *SQSSender {
	return &SQSSender{client: client, queueURL: queueURL}
}

func (s *SQSSender) SendMessage(ctx context.Context, body string) error {
	_, err := s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(s.queueURL),
		MessageBody:       aws.String(body),
		MessageAttributes: telemetry.InjectTraceContext(ctx),
	})
	return err
}
