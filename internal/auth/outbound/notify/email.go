package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/albanyauto/vsm/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
)

// Email sends OTP messages through the mail relay, retrying transient
// failures a few times before giving up.
type Email struct {
	mailer  mail.Mail
	subject string
	retries uint64
	backoff time.Duration
}

type EmailConfig struct {
	// Subject is the subject line for OTP mails.
	Subject string
	// Retries is the number of delivery retries (total attempts = retries+1).
	Retries uint64
	// Backoff is the constant delay between attempts.
	Backoff time.Duration
}

func NewEmail(mailer mail.Mail, cfg EmailConfig) *Email {
	subject := cfg.Subject
	if subject == "" {
		subject = "Your verification code"
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	return &Email{
		mailer:  mailer,
		subject: subject,
		retries: cfg.Retries,
		backoff: backoff,
	}
}

func (e *Email) Send(ctx context.Context, address, message string) error {
	backoff := retry.WithMaxRetries(e.retries, retry.NewConstant(e.backoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := e.mailer.Send(ctx, mail.Message{
			To:       []string{address},
			Subject:  e.subject,
			TextBody: message,
		})
		if err != nil {
			slog.WarnContext(ctx, "email delivery attempt failed", "to", address, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}
