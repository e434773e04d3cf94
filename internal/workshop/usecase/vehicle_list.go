package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/workshop/entity"
)

// ListVehicles returns the authenticated user's vehicles.
func (s *Usecase) ListVehicles(ctx context.Context) ([]entity.Vehicle, error) {
	ctx, span := s.startSpan(ctx, "ListVehicles")
	defer span.End()

	clm, err := claims(ctx)
	if err != nil {
		return nil, err
	}

	vehicles, err := s.repoDB.ListVehiclesByOwner(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list vehicles", "owner_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return vehicles, nil
}

// GetVehicle returns a single vehicle. Customers can only read their own;
// staff can read any.
func (s *Usecase) GetVehicle(ctx context.Context, id int64) (*entity.Vehicle, error) {
	ctx, span := s.startSpan(ctx, "GetVehicle")
	defer span.End()

	clm, err := claims(ctx)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.repoDB.GetVehicle(ctx, id)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("vehicle not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to get vehicle", "vehicle_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	if vehicle.OwnerID != clm.UserID && !isStaff(clm.UserRole) {
		return nil, goerror.NewBusiness("vehicle not found", goerror.CodeNotFound)
	}

	return vehicle, nil
}
