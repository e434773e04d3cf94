package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/albanyauto/vsm/internal/pkg/goerror"
)

type MarkReadInput struct {
	ID int64 `validate:"required"`
}

// MarkRead flags one of the user's notifications as read. Idempotent.
func (s *Usecase) MarkRead(ctx context.Context, in MarkReadInput) error {
	ctx, span := s.startSpan(ctx, "MarkRead")
	defer span.End()

	clm, err := claims(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.MarkNotificationRead(ctx, in.ID, clm.UserID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("notification not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to mark notification read", "notification_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
