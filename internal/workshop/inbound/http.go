package inbound

import (
	"context"

	"github.com/albanyauto/vsm/internal/pkg/router"
	"github.com/albanyauto/vsm/internal/workshop/entity"
	"github.com/albanyauto/vsm/internal/workshop/usecase"
)

type uc interface {
	CreateVehicle(ctx context.Context, in usecase.CreateVehicleInput) (*entity.Vehicle, error)
	ListVehicles(ctx context.Context) ([]entity.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*entity.Vehicle, error)

	CreateServiceRequest(ctx context.Context, in usecase.CreateServiceRequestInput) (*entity.ServiceRequest, error)
	ListServiceRequests(ctx context.Context, in usecase.ListServiceRequestsInput) ([]entity.ServiceRequest, error)
	UpdateServiceStatus(ctx context.Context, in usecase.UpdateServiceStatusInput) (*entity.ServiceRequest, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Vehicles
	r.POST("/api/v1/vehicles", end.CreateVehicle, r.Authorize("vehicles", "write"))
	r.GET("/api/v1/vehicles", end.ListVehicles, r.Authorize("vehicles", "read"))
	r.GET("/api/v1/vehicles/:id", end.GetVehicle, r.Authorize("vehicles", "read"))

	// Service requests
	r.POST("/api/v1/service-requests", end.CreateServiceRequest, r.Authorize("service_requests", "write"))
	r.GET("/api/v1/service-requests", end.ListServiceRequests, r.Authorize("service_requests", "read"))
	r.PATCH("/api/v1/service-requests/:id/status", end.UpdateServiceStatus, r.Authorize("service_requests", "update"))
}
