package usecase

import (
	"context"

	"github.com/albanyauto/vsm/internal/pkg/goerror"
)

type LogoutInput struct {
	SessionToken string `validate:"required"`
}

// Logout revokes the opaque session token. Revoking an unknown or already
// revoked token is a no-op.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	_, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	s.sessions.Revoke(in.SessionToken)
	return nil
}
