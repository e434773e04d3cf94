package usecase

import (
	"context"
	"log/slog"

	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/workshop/entity"
)

type ListServiceRequestsInput struct {
	Status entity.ServiceStatus
}

// ListServiceRequests lists service requests. Customers only ever see their
// own; staff see the whole workshop queue.
func (s *Usecase) ListServiceRequests(ctx context.Context, in ListServiceRequestsInput) ([]entity.ServiceRequest, error) {
	ctx, span := s.startSpan(ctx, "ListServiceRequests")
	defer span.End()

	clm, err := claims(ctx)
	if err != nil {
		return nil, err
	}

	filter := entity.ServiceRequestFilter{Status: in.Status}
	if !isStaff(clm.UserRole) {
		filter.CustomerID = clm.UserID
	}

	requests, err := s.repoDB.ListServiceRequests(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list service requests", "error", err)
		return nil, goerror.NewServer(err)
	}

	return requests, nil
}
