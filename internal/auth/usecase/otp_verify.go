package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/albanyauto/vsm/internal/auth/entity"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/pkg/otpcache"
)

type OTPVerifyInput struct {
	Identifier string `validate:"required"`
	Code       string `validate:"required"`
	Purpose    entity.OTPPurpose
}

// OTPVerify checks the submitted code against the live one.
//
// A matching code is consumed: the same code cannot be verified twice. A
// mismatch leaves the stored code untouched so the user may retry until it
// expires.
func (s *Usecase) OTPVerify(ctx context.Context, in OTPVerifyInput) error {
	ctx, span := s.startSpan(ctx, "OTPVerify")
	defer span.End()

	in.Identifier = normalizeIdentifier(in.Identifier)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	return s.consumeOTP(ctx, in.Purpose, in.Identifier, in.Code)
}

// consumeOTP implements the verify-with-consumption step shared by the OTP,
// registration and login flows.
func (s *Usecase) consumeOTP(ctx context.Context, purpose entity.OTPPurpose, identifier, code string) error {
	key := otpKey(purpose, identifier)

	stored, err := s.otpStore.Get(ctx, key)
	if errors.Is(err, otpcache.ErrNotFound) {
		slog.WarnContext(ctx, "otp verify with no live code", "identifier", identifier, "purpose", purpose.String())
		return goerror.NewBusiness("verification code expired or not requested", goerror.CodeOTPExpired)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to read otp code", "identifier", identifier, "error", err)
		return goerror.NewServer(err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		slog.WarnContext(ctx, "otp verify mismatch", "identifier", identifier, "purpose", purpose.String())
		return goerror.NewBusiness("verification code does not match", goerror.CodeOTPMismatch)
	}

	if err := s.otpStore.Evict(ctx, key); err != nil {
		slog.ErrorContext(ctx, "failed to evict consumed otp", "identifier", identifier, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
