package notifier

import (
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// EmailNotifier sends reports over SMTP. It first tries an implicit-TLS
// connection (port 465 style) and falls back to STARTTLS when the server
// refuses the handshake.
type EmailNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string

	log zerolog.Logger
}

func NewEmailNotifier(host string, port int, username, password, from string, to []string, log zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		To:       to,
		log:      log.With().Str("component", "notifier").Logger(),
	}
}

func (e *EmailNotifier) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(e.To) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	body, err := e.buildMessage(msg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", e.Host, e.Port)
	if err := e.sendWithTLS(addr, body); err != nil {
		return fmt.Errorf("send email via %s: %w", addr, err)
	}
	e.log.Info().Str("subject", msg.Subject).Int("recipients", len(e.To)).
		Int("attachments", len(msg.Attachments)).Msg("email sent")
	return nil
}

// buildMessage assembles the raw RFC 5322 message. With attachments it
// produces a multipart/mixed envelope; without, a plain text message.
func (e *EmailNotifier) buildMessage(msg Message) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("From: %s\r\n", e.From))
	b.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(e.To, ", ")))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	if len(msg.Attachments) == 0 {
		b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
		b.WriteString("Content-Transfer-Encoding: base64\r\n")
		b.WriteString("\r\n")
		b.WriteString(encodeBase64WithLineBreaks([]byte(msg.Body)))
		b.WriteString("\r\n")
		return b.String(), nil
	}

	boundary := generateBoundary()
	b.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", boundary))
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString("\r\n")
	b.WriteString(encodeBase64WithLineBreaks([]byte(msg.Body)))
	b.WriteString("\r\n")

	for _, path := range msg.Attachments {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read attachment %s: %w", path, err)
		}
		name := filepath.Base(path)
		b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		b.WriteString(fmt.Sprintf("Content-Type: %s; name=\"%s\"\r\n", attachmentType(name), name))
		b.WriteString("Content-Transfer-Encoding: base64\r\n")
		b.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n", name))
		b.WriteString("\r\n")
		b.WriteString(encodeBase64WithLineBreaks(data))
		b.WriteString("\r\n")
	}

	b.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return b.String(), nil
}

// sendWithTLS dials an implicit-TLS SMTP session. When the TLS dial
// fails (server expects plaintext + STARTTLS) it retries that way.
func (e *EmailNotifier) sendWithTLS(addr, body string) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: e.Host})
	if err != nil {
		e.log.Debug().Err(err).Msg("implicit TLS failed, trying STARTTLS")
		return e.sendWithSTARTTLS(addr, body)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, e.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Quit()

	return e.transmit(client, body)
}

func (e *EmailNotifier) sendWithSTARTTLS(addr, body string) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer client.Quit()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: e.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	return e.transmit(client, body)
}

func (e *EmailNotifier) transmit(client *smtp.Client, body string) error {
	if e.Username != "" {
		auth := smtp.PlainAuth("", e.Username, e.Password, e.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(e.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range e.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(body)); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return w.Close()
}

func attachmentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

func generateBoundary() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "trinity-boundary-fallback"
	}
	return fmt.Sprintf("trinity_%x", b)
}

// encodeBase64WithLineBreaks wraps base64 output at 76 characters as
// required for SMTP transfer.
func encodeBase64WithLineBreaks(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	var lines []string
	for len(encoded) > 76 {
		lines = append(lines, encoded[:76])
		encoded = encoded[76:]
	}
	lines = append(lines, encoded)
	return strings.Join(lines, "\r\n")
}
