package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

var (
	// ErrSMTPHostPortRequired is returned when Host/Port are missing.
	ErrSMTPHostPortRequired = errors.New("smtp host and port are required")
	// ErrSMTPNoRecipients is returned when To is empty.
	ErrSMTPNoRecipients = errors.New("no recipients provided")
)

// SMTPConfig holds connection settings for an SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the default sender used when a message has no explicit From.
	From string
}

// SMTP implements Mail over net/smtp.
type SMTP struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTP validates cfg and returns an SMTP mailer.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTP{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}, nil
}

// Send dispatches the message through the configured relay.
//
// net/smtp has no context support, so cancellation is checked up front only.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(msg.To) == 0 {
		return ErrSMTPNoRecipients
	}

	from := msg.From
	if from == "" {
		from = s.from
	}

	return smtp.SendMail(s.addr, s.auth, from, msg.To, s.render(from, msg))
}

func (s *SMTP) render(from string, msg Message) []byte {
	var b strings.Builder

	contentType := "text/plain; charset=UTF-8"
	body := msg.TextBody
	if msg.HTMLBody != "" {
		contentType = "text/html; charset=UTF-8"
		body = msg.HTMLBody
	}

	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: " + contentType + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")

	return []byte(b.String())
}

// Close implements io.Closer; SendMail opens a connection per message.
func (s *SMTP) Close() error {
	return nil
}
