package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/albanyauto/vsm/internal/auth/entity"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
)

type RegisterInput struct {
	FullName string `validate:"required,min=3,max=100"`
	Email    string `validate:"required,email"`
	Mobile   string `validate:"required,mobile"`
	Password string `validate:"required,password"`
	Role     entity.Role
}

// Register captures the profile as a pending registration and sends the
// verification code. No account exists until RegisterVerify succeeds.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = normalizeIdentifier(in.Email)
	in.Mobile = normalizeIdentifier(in.Mobile)
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	role := in.Role
	if role.IsUnknown() {
		role = entity.RoleCustomer
	}
	if role == entity.RoleAdmin {
		// Admin accounts are provisioned out of band, never self-registered.
		return goerror.NewBusiness("role not allowed for registration", goerror.CodeForbidden)
	}

	exists, err := s.repoDB.ExistsByIdentifier(ctx, in.Email, in.Mobile)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check user existence", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}
	if exists {
		return goerror.NewBusiness("email or mobile already registered", goerror.CodeConflict)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	identifier := registrationIdentifier(in.Email, in.Mobile)

	pending, err := json.Marshal(entity.PendingRegistration{
		FullName: in.FullName,
		Email:    in.Email,
		Mobile:   in.Mobile,
		Password: string(hashedPassword),
		Role:     role,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode pending registration", "error", err)
		return goerror.NewServer(err)
	}

	// The pending profile shares the OTP's TTL so a live registration code
	// always has its profile available.
	ttl := s.cfg.GetMinute("modules.auth.otp_ttl_minutes")
	if err := s.pendingStore.Put(ctx, pendingKey(identifier), string(pending), ttl); err != nil {
		slog.ErrorContext(ctx, "failed to store pending registration", "identifier", identifier, "error", err)
		return goerror.NewServer(err)
	}

	return s.OTPRequest(ctx, OTPRequestInput{
		Identifier: identifier,
		Purpose:    entity.OTPPurposeRegistration,
	})
}

// registrationIdentifier picks where the registration OTP goes: the mobile
// number when present, otherwise the email address.
func registrationIdentifier(email, mobile string) string {
	if mobile != "" {
		return mobile
	}
	return email
}
