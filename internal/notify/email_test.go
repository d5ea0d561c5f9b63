package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportMessage(t *testing.T) {
	raw, err := buildReportMessage("payroll@example.com", "books@example.com", "2024-01-08", []byte("workbook-bytes"))
	require.NoError(t, err)

	msg := string(raw)
	assert.Contains(t, msg, "From: payroll@example.com\r\n")
	assert.Contains(t, msg, "To: books@example.com\r\n")
	assert.Contains(t, msg, "Subject: Payroll report for week of 2024-01-08\r\n")
	assert.Contains(t, msg, "Content-Type: multipart/mixed")
	assert.Contains(t, msg, `filename="payroll-report-2024-01-08.xlsx"`)
	assert.Contains(t, msg, "Content-Transfer-Encoding: base64")
	// d29ya2Jvb2stYnl0ZXM= is "workbook-bytes" in base64.
	assert.Contains(t, msg, "d29ya2Jvb2stYnl0ZXM=")
}

func TestBuildReportMessageFoldsLongAttachments(t *testing.T) {
	raw, err := buildReportMessage("a@b.c", "d@e.f", "2024-01-08", make([]byte, 4096))
	require.NoError(t, err)

	for _, line := range strings.Split(string(raw), "\r\n") {
		assert.LessOrEqual(t, len(line), 998)
	}
}
