package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/albanyauto/vsm/internal/auth/entity"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/pkg/otpcache"
)

type RegisterVerifyInput struct {
	Identifier string `validate:"required"`
	Code       string `validate:"required"`
}

type RegisterVerifyOutput struct {
	UserID       int64
	FullName     string
	Email        string
	Mobile       string
	Role         entity.Role
	SessionToken string
	AccessToken  string
}

// RegisterVerify consumes the registration OTP, promotes the pending profile
// to an active account and signs the user in.
func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) (*RegisterVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	in.Identifier = normalizeIdentifier(in.Identifier)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.consumeOTP(ctx, entity.OTPPurposeRegistration, in.Identifier, in.Code); err != nil {
		return nil, err
	}

	raw, err := s.pendingStore.Get(ctx, pendingKey(in.Identifier))
	if errors.Is(err, otpcache.ErrNotFound) {
		slog.WarnContext(ctx, "pending registration missing after otp verify", "identifier", in.Identifier)
		return nil, goerror.NewBusiness("registration session expired, please register again", goerror.CodeSessionExpired)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to read pending registration", "identifier", in.Identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	var pending entity.PendingRegistration
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		slog.ErrorContext(ctx, "failed to decode pending registration", "identifier", in.Identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	user := entity.NewUser{
		ID:       s.uid.Generate(),
		FullName: pending.FullName,
		Email:    pending.Email,
		Mobile:   pending.Mobile,
		Password: pending.Password,
		Role:     pending.Role,
		Status:   entity.UserStatusActive,
	}
	if err := s.repoDB.CreateUser(ctx, user); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("email or mobile already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "email", user.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.pendingStore.Evict(ctx, pendingKey(in.Identifier)); err != nil {
		slog.WarnContext(ctx, "failed to evict pending registration", "identifier", in.Identifier, "error", err)
	}

	sessionToken, accessToken, err := s.issueTokens(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(gctx context.Context) error {
		if err := s.repoMessaging.PublishUserRegistered(gctx, UserRegisteredEvent{
			UserID:   user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Mobile:   user.Mobile,
			Role:     user.Role.String(),
		}); err != nil {
			slog.ErrorContext(gctx, "failed to publish user registered", "user_id", user.ID, "error", err)
		}
		return nil
	})

	return &RegisterVerifyOutput{
		UserID:       user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		Mobile:       user.Mobile,
		Role:         user.Role,
		SessionToken: sessionToken,
		AccessToken:  accessToken,
	}, nil
}

func (s *Usecase) issueTokens(ctx context.Context, userID int64, email string, role entity.Role) (string, string, error) {
	sessionToken, err := s.sessions.Issue(userID, role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue session token", "user_id", userID, "error", err)
		return "", "", goerror.NewServer(err)
	}

	accessToken, err := s.jwt.Generate(userID, email, role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", userID, "error", err)
		return "", "", goerror.NewServer(err)
	}

	return sessionToken, accessToken, nil
}
