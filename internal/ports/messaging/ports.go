package messaging

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Producer publishes domain events to the message broker.
type Producer interface {
	PublishExport(ctx context.Context, event ExportRequestedEvent) error
}

// MessageSender abstracts the raw queue send, so producers can be
// tested without AWS.
type MessageSender interface {
	SendMessage(ctx context.Context, body string) error
}

// SQSClient is the slice of the SQS API the sender uses.
type SQSClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}
