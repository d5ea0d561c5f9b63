package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"payroll.service/pkg/telemetry"
)

// EmailService delivers generated payroll reports.
type EmailService interface {
	SendPayrollReport(ctx context.Context, to, weekStart string, report []byte) error
}

// SESClient is the slice of the SES API the service uses.
type SESClient interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

type SESEmailService struct {
	client SESClient
	sender string
}

func NewSESEmailService(client SESClient, sender string) *SESEmailService {
	return &SESEmailService{client: client, sender: sender}
}

// SendPayrollReport mails the spreadsheet as an xlsx attachment. SES has
// no high-level attachment support, so the MIME message is built here.
func (s *SESEmailService) SendPayrollReport(ctx context.Context, to, weekStart string, report []byte) error {
	tracer := otel.Tracer("ses-email-service")
	ctx, span := tracer.Start(ctx, "send_payroll_report", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if jobID := telemetry.ExportJobIDFromContext(ctx); jobID != "" {
		span.SetAttributes(attribute.String("app.exportJobId", jobID))
	}
	span.SetAttributes(attribute.String("app.weekStart", weekStart))

	raw, err := buildReportMessage(s.sender, to, weekStart, report)
	if err != nil {
		return fmt.Errorf("failed to build report email: %w", err)
	}

	_, err = s.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(s.sender),
		Destinations: []string{to},
		RawMessage:   &types.RawMessage{Data: raw},
	})
	return err
}

func buildReportMessage(from, to, weekStart string, report []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: Payroll report for week of %s\r\n", weekStart)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", writer.Boundary())
	buf.WriteString("\r\n")

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	textPart, err := writer.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(textPart, "Hello,\n\nAttached is the payroll report for the week starting %s.\n", weekStart)

	filename := fmt.Sprintf("payroll-report-%s.xlsx", weekStart)
	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	fileHeader.Set("Content-Transfer-Encoding", "base64")
	fileHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	filePart, err := writer.CreatePart(fileHeader)
	if err != nil {
		return nil, err
	}

	encoded := base64.StdEncoding.EncodeToString(report)
	// SES rejects lines over 1000 characters, fold the base64 body.
	for len(encoded) > 76 {
		filePart.Write([]byte(encoded[:76] + "\r\n"))
		encoded = encoded[76:]
	}
	filePart.Write([]byte(encoded + "\r\n"))

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
