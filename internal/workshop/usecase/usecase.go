package usecase

import (
	"context"

	"github.com/albanyauto/vsm/internal/pkg/clock"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/pkg/instrument"
	"github.com/albanyauto/vsm/internal/pkg/jwt"
	"github.com/albanyauto/vsm/internal/pkg/uid"
	"github.com/albanyauto/vsm/internal/pkg/validator"
	"github.com/albanyauto/vsm/internal/workshop/entity"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateVehicle(ctx context.Context, v entity.Vehicle) error
	GetVehicle(ctx context.Context, id int64) (*entity.Vehicle, error)
	ListVehiclesByOwner(ctx context.Context, ownerID int64) ([]entity.Vehicle, error)

	CreateServiceRequest(ctx context.Context, sr entity.ServiceRequest) error
	GetServiceRequest(ctx context.Context, id int64) (*entity.ServiceRequest, error)
	ListServiceRequests(ctx context.Context, filter entity.ServiceRequestFilter) ([]entity.ServiceRequest, error)
	UpdateServiceRequestStatus(ctx context.Context, id int64, oldStatus, newStatus entity.ServiceStatus, advisorID int64) error
}

type Usecase struct {
	repoDB    repoDB
	validator validator.Validator
	uid       uid.NumberID
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	Validator  validator.Validator
	UID        uid.NumberID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		validator: dep.Validator,
		uid:       dep.UID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("workshop.usecase").Start(ctx, name)
}

// claims pulls the authenticated user off the context. The authentication
// middleware guarantees it for every workshop route.
func claims(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}
	return clm, nil
}

func isStaff(role string) bool {
	return role == "admin" || role == "serviceadvisor"
}
