package usecase

import (
	"context"
	"log/slog"

	"github.com/albanyauto/vsm/internal/notification/entity"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
)

// ListNotifications returns the authenticated user's notifications, newest first.
func (s *Usecase) ListNotifications(ctx context.Context) ([]entity.Notification, error) {
	ctx, span := s.startSpan(ctx, "ListNotifications")
	defer span.End()

	clm, err := claims(ctx)
	if err != nil {
		return nil, err
	}

	notifications, err := s.repoDB.ListNotifications(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list notifications", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return notifications, nil
}
