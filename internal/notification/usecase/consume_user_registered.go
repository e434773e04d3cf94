package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albanyauto/vsm/internal/notification/entity"
	"github.com/albanyauto/vsm/internal/pkg/mail"
)

type ConsumeUserRegisteredInput struct {
	UserID   int64  `validate:"required,gt=0"`
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Mobile   string
	Role     string
}

// ConsumeUserRegistered handles the post-registration fanout: a welcome email
// plus an in-app notification. Malformed payloads are dropped rather than
// retried; a broken message never becomes valid.
func (s *Usecase) ConsumeUserRegistered(ctx context.Context, in ConsumeUserRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserRegistered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid user registered payload", "user_id", in.UserID, "error", err)
		return nil
	}

	n := entity.Notification{
		ID:        s.uid.Generate(),
		UserID:    in.UserID,
		Title:     "Welcome to " + s.appName(),
		Body:      fmt.Sprintf("Hi %s, your account is ready. You can now add your vehicles and book services.", in.FullName),
		CreatedAt: s.clock.Now(),
	}
	if err := s.repoDB.CreateNotification(ctx, n); err != nil {
		slog.ErrorContext(ctx, "failed to create welcome notification", "user_id", in.UserID, "error", err)
		return err
	}

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  "Welcome to " + s.appName(),
		TextBody: n.Body,
	}); err != nil {
		// The in-app notification already landed; the mail is best effort.
		slog.WarnContext(ctx, "failed to send welcome email", "user_id", in.UserID, "error", err)
	}

	return nil
}

func (s *Usecase) appName() string {
	if name := s.cfg.GetString("app.name"); name != "" {
		return name
	}
	return "Vehicle Service Management"
}
