package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/albanyauto/vsm/internal/auth/entity"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
)

type LoginInput struct {
	Identifier string `validate:"required"`
}

// Login starts an OTP login for a known, active account.
//
// An unknown identifier is reported as not found rather than masked; the
// mobile app tells unregistered users to sign up first.
func (s *Usecase) Login(ctx context.Context, in LoginInput) error {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Identifier = normalizeIdentifier(in.Identifier)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByIdentifier(ctx, in.Identifier)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown identifier", "identifier", in.Identifier)
		return goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by identifier", "identifier", in.Identifier, "error", err)
		return goerror.NewServer(err)
	}

	if user.Status.Ensure() != entity.UserStatusActive {
		slog.WarnContext(ctx, "login for non-active account", "user_id", user.ID, "status", user.Status.String())
		return goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}

	return s.OTPRequest(ctx, OTPRequestInput{
		Identifier: in.Identifier,
		Purpose:    entity.OTPPurposeLogin,
	})
}
