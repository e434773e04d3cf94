package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/albanyauto/vsm/internal/auth/entity"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
)

type LoginVerifyInput struct {
	Identifier string `validate:"required"`
	Code       string `validate:"required"`
}

type LoginVerifyOutput struct {
	UserID       int64
	FullName     string
	Email        string
	Mobile       string
	Role         entity.Role
	SessionToken string
	AccessToken  string
}

// LoginVerify consumes the login OTP and issues a session plus access token.
func (s *Usecase) LoginVerify(ctx context.Context, in LoginVerifyInput) (*LoginVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginVerify")
	defer span.End()

	in.Identifier = normalizeIdentifier(in.Identifier)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.consumeOTP(ctx, entity.OTPPurposeLogin, in.Identifier, in.Code); err != nil {
		return nil, err
	}

	user, err := s.repoDB.GetUserByIdentifier(ctx, in.Identifier)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login verify for unknown identifier", "identifier", in.Identifier)
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by identifier", "identifier", in.Identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	if user.Status.Ensure() != entity.UserStatusActive {
		slog.WarnContext(ctx, "login verify for non-active account", "user_id", user.ID, "status", user.Status.String())
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
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
