package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/albanyauto/vsm/internal/auth/entity"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
)

type LoginPasswordInput struct {
	Identifier string `validate:"required"`
	Password   string `validate:"required"`
}

// LoginPassword authenticates with a password instead of an OTP.
//
// Unlike the OTP login, failures here do not reveal whether the account
// exists.
func (s *Usecase) LoginPassword(ctx context.Context, in LoginPasswordInput) (*LoginVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginPassword")
	defer span.End()

	in.Identifier = normalizeIdentifier(in.Identifier)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByIdentifier(ctx, in.Identifier)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password login for unknown identifier", "identifier", in.Identifier)
		return nil, goerror.NewBusiness("invalid identifier or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by identifier", "identifier", in.Identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password login mismatch", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid identifier or password", goerror.CodeUnauthorized)
	}

	if user.Status.Ensure() != entity.UserStatusActive {
		slog.WarnContext(ctx, "password login for non-active account", "user_id", user.ID, "status", user.Status.String())
		return nil, goerror.NewBusiness("account is not active", goerror.CodeForbidden)
	}

	sessionToken, accessToken, err := s.issueTokens(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginVerifyOutput{
		UserID:       user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		Mobile:       user.Mobile,
		Role:         user.Role,
		SessionToken: sessionToken,
		AccessToken:  accessToken,
	}, nil
}
