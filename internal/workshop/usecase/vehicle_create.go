package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/workshop/entity"
)

type CreateVehicleInput struct {
	RegistrationNo string `validate:"required,min=4,max=20"`
	Make           string `validate:"required,max=50"`
	Model          string `validate:"required,max=50"`
	Year           int32  `validate:"required,gte=1950,lte=2100"`
}

// CreateVehicle registers a vehicle under the authenticated user.
func (s *Usecase) CreateVehicle(ctx context.Context, in CreateVehicleInput) (*entity.Vehicle, error) {
	ctx, span := s.startSpan(ctx, "CreateVehicle")
	defer span.End()

	clm, err := claims(ctx)
	if err != nil {
		return nil, err
	}

	in.RegistrationNo = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(in.RegistrationNo), " ", ""))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	vehicle := entity.Vehicle{
		ID:             s.uid.Generate(),
		OwnerID:        clm.UserID,
		RegistrationNo: in.RegistrationNo,
		Make:           in.Make,
		Model:          in.Model,
		Year:           in.Year,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repoDB.CreateVehicle(ctx, vehicle); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("vehicle registration number already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to create vehicle", "registration_no", in.RegistrationNo, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &vehicle, nil
}
