package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/workshop/entity"
)

type CreateServiceRequestInput struct {
	VehicleID   int64  `validate:"required"`
	Description string `validate:"required,min=10,max=2000"`
}

// CreateServiceRequest opens a pending service request for one of the
// authenticated user's vehicles.
func (s *Usecase) CreateServiceRequest(ctx context.Context, in CreateServiceRequestInput) (*entity.ServiceRequest, error) {
	ctx, span := s.startSpan(ctx, "CreateServiceRequest")
	defer span.End()

	clm, err := claims(ctx)
	if err != nil {
		return nil, err
	}

	in.Description = strings.TrimSpace(in.Description)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	vehicle, err := s.repoDB.GetVehicle(ctx, in.VehicleID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("vehicle not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to get vehicle", "vehicle_id", in.VehicleID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if vehicle.OwnerID != clm.UserID {
		return nil, goerror.NewBusiness("vehicle not found", goerror.CodeNotFound)
	}

	now := s.clock.Now()
	sr := entity.ServiceRequest{
		ID:          s.uid.Generate(),
		VehicleID:   vehicle.ID,
		CustomerID:  clm.UserID,
		Description: in.Description,
		Status:      entity.ServiceStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repoDB.CreateServiceRequest(ctx, sr); err != nil {
		slog.ErrorContext(ctx, "failed to create service request", "vehicle_id", vehicle.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &sr, nil
}
