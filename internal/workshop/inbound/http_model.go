package inbound

import "time"

type CreateVehicleRequest struct {
	RegistrationNo string `json:"registration_no"`
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           int32  `json:"year"`
}

type VehicleResponse struct {
	ID             int64     `json:"id,string"`
	OwnerID        int64     `json:"owner_id,string"`
	RegistrationNo string    `json:"registration_no"`
	Make           string    `json:"make"`
	Model          string    `json:"model"`
	Year           int32     `json:"year"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateServiceRequestRequest struct {
	VehicleID   int64  `json:"vehicle_id,string"`
	Description string `json:"description"`
}

type UpdateServiceStatusRequest struct {
	Status string `json:"status"`
}

type ServiceRequestResponse struct {
	ID          int64     `json:"id,string"`
	VehicleID   int64     `json:"vehicle_id,string"`
	CustomerID  int64     `json:"customer_id,string"`
	AdvisorID   int64     `json:"advisor_id,string,omitempty"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
