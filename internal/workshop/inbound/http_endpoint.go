package inbound

import (
	"github.com/albanyauto/vsm/internal/pkg/router"
	"github.com/albanyauto/vsm/internal/workshop/entity"
	"github.com/albanyauto/vsm/internal/workshop/usecase"
	"github.com/samber/lo"
)

type HTTPEndpoint struct {
	uc uc
}

func toVehicleResponse(v entity.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:             v.ID,
		OwnerID:        v.OwnerID,
		RegistrationNo: v.RegistrationNo,
		Make:           v.Make,
		Model:          v.Model,
		Year:           v.Year,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func toServiceRequestResponse(sr entity.ServiceRequest) ServiceRequestResponse {
	return ServiceRequestResponse{
		ID:          sr.ID,
		VehicleID:   sr.VehicleID,
		CustomerID:  sr.CustomerID,
		AdvisorID:   sr.AdvisorID,
		Description: sr.Description,
		Status:      sr.Status.String(),
		CreatedAt:   sr.CreatedAt,
		UpdatedAt:   sr.UpdatedAt,
	}
}

func (h *HTTPEndpoint) CreateVehicle(r *router.Request) (any, error) {
	var req CreateVehicleRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	vehicle, err := h.uc.CreateVehicle(r.Context(), usecase.CreateVehicleInput{
		RegistrationNo: req.RegistrationNo,
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
	})
	if err != nil {
		return nil, err
	}

	return toVehicleResponse(*vehicle), nil
}

func (h *HTTPEndpoint) ListVehicles(r *router.Request) (any, error) {
	vehicles, err := h.uc.ListVehicles(r.Context())
	if err != nil {
		return nil, err
	}

	return lo.Map(vehicles, func(v entity.Vehicle, _ int) VehicleResponse {
		return toVehicleResponse(v)
	}), nil
}

func (h *HTTPEndpoint) GetVehicle(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	vehicle, err := h.uc.GetVehicle(r.Context(), id)
	if err != nil {
		return nil, err
	}

	return toVehicleResponse(*vehicle), nil
}

func (h *HTTPEndpoint) CreateServiceRequest(r *router.Request) (any, error) {
	var req CreateServiceRequestRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	sr, err := h.uc.CreateServiceRequest(r.Context(), usecase.CreateServiceRequestInput{
		VehicleID:   req.VehicleID,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	return toServiceRequestResponse(*sr), nil
}

func (h *HTTPEndpoint) ListServiceRequests(r *router.Request) (any, error) {
	requests, err := h.uc.ListServiceRequests(r.Context(), usecase.ListServiceRequestsInput{
		Status: entity.ServiceStatusFromString(r.GetQuery("status")),
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(requests, func(sr entity.ServiceRequest, _ int) ServiceRequestResponse {
		return toServiceRequestResponse(sr)
	}), nil
}

func (h *HTTPEndpoint) UpdateServiceStatus(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateServiceStatusRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	sr, err := h.uc.UpdateServiceStatus(r.Context(), usecase.UpdateServiceStatusInput{
		ID:     id,
		Status: entity.ServiceStatusFromString(req.Status),
	})
	if err != nil {
		return nil, err
	}

	return toServiceRequestResponse(*sr), nil
}
