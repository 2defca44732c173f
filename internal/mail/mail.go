// Package mail delivers outbound email (password reset links) through a
// configurable driver.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"time"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/config"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/observability"
)

// Driver names accepted in MAIL_DRIVER.
const (
	DriverLog   = "log"
	DriverSMTP  = "smtp"
	DriverGmail = "gmail"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends a message or reports why it could not.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the mailer selected by cfg.MailDriver, wrapped with delivery metrics.
func New(ctx context.Context, cfg *config.Config) (Mailer, error) {
	var (
		m   Mailer
		err error
	)
	driver := cfg.MailDriver
	switch driver {
	case DriverSMTP:
		m = NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	case DriverGmail:
		m, err = NewGmailMailer(ctx, cfg.GmailCredentialsFile, cfg.GmailTokenFile, cfg.MailFrom)
	case "", DriverLog:
		driver = DriverLog
		m = NewLogMailer()
	default:
		err = fmt.Errorf("unsupported mail driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(driver, m), nil
}

type instrumented struct {
	driver string
	next   Mailer
}

// Instrument counts deliveries of next under the given driver label.
func Instrument(driver string, next Mailer) Mailer {
	return &instrumented{driver: driver, next: next}
}

func (m *instrumented) Send(ctx context.Context, msg Message) error {
	ctx, span := observability.TraceMailSend(ctx, m.driver, msg.Subject)
	defer span.End()
	err := m.next.Send(ctx, msg)
	observability.RecordErrorInContext(ctx, err)
	observability.MailDeliveries.WithLabelValues(m.driver, observability.OutcomeOf(err)).Inc()
	return err
}

// buildMIME renders msg as an RFC 5322 message with a UTF-8 text body.
func buildMIME(from string, msg Message, now time.Time) ([]byte, error) {
	if _, err := mail.ParseAddress(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	if strings.ContainsAny(msg.Subject, "\r\n") {
		return nil, fmt.Errorf("subject contains a line break")
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return b.Bytes(), nil
}
