package notifier

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingNotifier struct {
	calls    int
	failures int
}

func (c *countingNotifier) Send(ctx context.Context, msg Message) error {
	c.calls++
	if c.calls <= c.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

func TestSendWithRetry_SucceedsFirstTry(t *testing.T) {
	n := &countingNotifier{}
	err := SendWithRetry(context.Background(), n, Message{Subject: "hi"}, 3, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, n.calls)
}

func TestSendWithRetry_RecoversAfterFailure(t *testing.T) {
	n := &countingNotifier{failures: 1}
	err := SendWithRetry(context.Background(), n, Message{Subject: "hi"}, 3, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, n.calls)
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	n := &countingNotifier{failures: 10}
	err := SendWithRetry(context.Background(), n, Message{Subject: "hi"}, 0, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 1 retries exhausted")
	assert.Equal(t, 1, n.calls)
}

func TestSendWithRetry_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	n := &countingNotifier{failures: 10}
	err := SendWithRetry(ctx, n, Message{Subject: "hi"}, 5, zerolog.Nop())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, n.calls)
}

func TestBuildMessage_PlainText(t *testing.T) {
	e := NewEmailNotifier("smtp.example.com", 465, "user", "pass", "scanner@example.com",
		[]string{"a@example.com", "b@example.com"}, zerolog.Nop())

	raw, err := e.buildMessage(Message{Subject: "Scan results", Body: "2 candidates found"})
	require.NoError(t, err)

	assert.Contains(t, raw, "From: scanner@example.com\r\n")
	assert.Contains(t, raw, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, raw, "Subject: Scan results\r\n")
	assert.Contains(t, raw, "MIME-Version: 1.0\r\n")
	assert.Contains(t, raw, "Content-Type: text/plain")
	assert.NotContains(t, raw, "multipart/mixed")
	assert.Contains(t, raw, encodeBase64WithLineBreaks([]byte("2 candidates found")))
}

func TestBuildMessage_WithAttachments(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "trinity_trading_report_2026-03-02.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Rank,Ticker\n1,ABCD\n"), 0o644))

	e := NewEmailNotifier("smtp.example.com", 465, "user", "pass", "scanner@example.com",
		[]string{"a@example.com"}, zerolog.Nop())

	raw, err := e.buildMessage(Message{
		Subject:     "Scan results",
		Body:        "see attached",
		Attachments: []string{csvPath},
	})
	require.NoError(t, err)

	assert.Contains(t, raw, "Content-Type: multipart/mixed; boundary=")
	assert.Contains(t, raw, `Content-Type: text/csv; name="trinity_trading_report_2026-03-02.csv"`)
	assert.Contains(t, raw, `Content-Disposition: attachment; filename="trinity_trading_report_2026-03-02.csv"`)
	assert.Contains(t, raw, encodeBase64WithLineBreaks([]byte("Rank,Ticker\n1,ABCD\n")))

	// The envelope must be closed with a terminal boundary marker.
	boundary := raw[strings.Index(raw, `boundary="`)+len(`boundary="`):]
	boundary = boundary[:strings.Index(boundary, `"`)]
	assert.True(t, strings.Contains(raw, "--"+boundary+"--\r\n"))
}

func TestBuildMessage_MissingAttachment(t *testing.T) {
	e := NewEmailNotifier("smtp.example.com", 465, "", "", "scanner@example.com",
		[]string{"a@example.com"}, zerolog.Nop())

	_, err := e.buildMessage(Message{Subject: "s", Body: "b", Attachments: []string{"/no/such/file.csv"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read attachment")
}

func TestSend_NoRecipients(t *testing.T) {
	e := NewEmailNotifier("smtp.example.com", 465, "", "", "scanner@example.com", nil, zerolog.Nop())
	err := e.Send(context.Background(), Message{Subject: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recipients")
}

func TestSend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEmailNotifier("smtp.example.com", 465, "", "", "scanner@example.com",
		[]string{"a@example.com"}, zerolog.Nop())
	err := e.Send(ctx, Message{Subject: "s"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestEncodeBase64WithLineBreaks(t *testing.T) {
	data := []byte(strings.Repeat("trinity scanner output ", 40))
	encoded := encodeBase64WithLineBreaks(data)

	for _, line := range strings.Split(encoded, "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(encoded, "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestAttachmentType(t *testing.T) {
	assert.Equal(t, "text/csv", attachmentType("report.csv"))
	assert.Equal(t, "application/json", attachmentType("report.JSON"))
	assert.Equal(t, "text/plain", attachmentType("notes.txt"))
	assert.Equal(t, "application/octet-stream", attachmentType("report.bin"))
}
