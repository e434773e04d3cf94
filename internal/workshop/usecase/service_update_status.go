package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/workshop/entity"
)

type UpdateServiceStatusInput struct {
	ID     int64 `validate:"required"`
	Status entity.ServiceStatus
}

// UpdateServiceStatus moves a service request through its lifecycle. Staff
// drive every transition; the advisor making the change is recorded on the
// request. Customers may only cancel their own requests, and only while the
// request is not yet in a terminal state.
func (s *Usecase) UpdateServiceStatus(ctx context.Context, in UpdateServiceStatusInput) (*entity.ServiceRequest, error) {
	ctx, span := s.startSpan(ctx, "UpdateServiceStatus")
	defer span.End()

	clm, err := claims(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if in.Status == entity.ServiceStatusUnknown {
		return nil, goerror.NewInvalidFormat("unknown service status")
	}

	sr, err := s.repoDB.GetServiceRequest(ctx, in.ID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("service request not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to get service request", "request_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !isStaff(clm.UserRole) {
		if sr.CustomerID != clm.UserID {
			return nil, goerror.NewBusiness("service request not found", goerror.CodeNotFound)
		}
		if in.Status != entity.ServiceStatusCancelled {
			return nil, goerror.NewBusiness("customers can only cancel their requests", goerror.CodeForbidden)
		}
	}

	if !sr.Status.CanTransitionTo(in.Status) {
		return nil, goerror.NewBusiness(
			"cannot move request from "+sr.Status.String()+" to "+in.Status.String(),
			goerror.CodeConflict,
		)
	}

	advisorID := sr.AdvisorID
	if isStaff(clm.UserRole) {
		advisorID = clm.UserID
	}

	if err := s.repoDB.UpdateServiceRequestStatus(ctx, sr.ID, sr.Status, in.Status, advisorID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			// Lost the race with a concurrent transition.
			return nil, goerror.NewBusiness("service request was updated concurrently", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to update service request status", "request_id", sr.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	sr.Status = in.Status
	sr.AdvisorID = advisorID
	sr.UpdatedAt = s.clock.Now()

	return sr, nil
}
