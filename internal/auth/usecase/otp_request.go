package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albanyauto/vsm/internal/auth/entity"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
)

type OTPRequestInput struct {
	Identifier string `validate:"required"`
	Purpose    entity.OTPPurpose
}

// OTPRequest issues a fresh code for the identifier and delivers it.
//
// Requesting again for the same identifier replaces the previous code and
// resets its expiry, so a resend invalidates older codes. When delivery fails
// the stored code is left in place; a later verify with it still succeeds.
func (s *Usecase) OTPRequest(ctx context.Context, in OTPRequestInput) error {
	ctx, span := s.startSpan(ctx, "OTPRequest")
	defer span.End()

	in.Identifier = normalizeIdentifier(in.Identifier)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}
	if in.Purpose.String() == "unknown" {
		return goerror.NewInvalidFormat("unknown otp purpose")
	}

	code, err := s.otpGen.Generate(s.codeLength(in.Identifier))
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "identifier", in.Identifier, "error", err)
		return goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.auth.otp_ttl_minutes")
	if err := s.otpStore.Put(ctx, otpKey(in.Purpose, in.Identifier), code, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to store otp code", "identifier", in.Identifier, "error", err)
		return goerror.NewServer(err)
	}

	message := fmt.Sprintf("Your %s code is %s. It expires in %d minutes.",
		in.Purpose.String(), code, int(ttl.Minutes()))

	if err := s.notifier.Send(ctx, in.Identifier, message); err != nil {
		slog.ErrorContext(ctx, "failed to deliver otp code", "identifier", in.Identifier, "error", err)
		return goerror.NewBusiness("could not deliver verification code", goerror.CodeDeliveryFailed)
	}

	return nil
}

func (s *Usecase) codeLength(identifier string) int {
	key := "modules.auth.otp_length"
	if !isEmail(identifier) {
		key = "modules.auth.otp_strict_length"
	}

	if n := s.cfg.GetInt(key); n > 0 {
		return n
	}
	return 4
}
