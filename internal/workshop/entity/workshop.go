package entity

import "time"

type ServiceStatus int

const (
	ServiceStatusUnknown ServiceStatus = iota
	ServiceStatusPending
	ServiceStatusInProgress
	ServiceStatusCompleted
	ServiceStatusCancelled
)

func ServiceStatusFromString(str string) ServiceStatus {
	switch str {
	case "pending":
		return ServiceStatusPending
	case "in_progress":
		return ServiceStatusInProgress
	case "completed":
		return ServiceStatusCompleted
	case "cancelled":
		return ServiceStatusCancelled
	default:
		return ServiceStatusUnknown
	}
}

func (ss ServiceStatus) String() string {
	switch ss {
	case ServiceStatusPending:
		return "pending"
	case ServiceStatusInProgress:
		return "in_progress"
	case ServiceStatusCompleted:
		return "completed"
	case ServiceStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (ss ServiceStatus) IsTerminal() bool {
	return ss == ServiceStatusCompleted || ss == ServiceStatusCancelled
}

// CanTransitionTo enforces the service lifecycle:
// pending -> in_progress -> completed, with cancellation allowed until work starts being final.
func (ss ServiceStatus) CanTransitionTo(next ServiceStatus) bool {
	if ss.IsTerminal() || next == ServiceStatusUnknown || next == ss {
		return false
	}

	switch next {
	case ServiceStatusInProgress:
		return ss == ServiceStatusPending
	case ServiceStatusCompleted:
		return ss == ServiceStatusInProgress
	case ServiceStatusCancelled:
		return true
	default:
		return false
	}
}

type Vehicle struct {
	ID             int64
	OwnerID        int64
	RegistrationNo string
	Make           string
	Model          string
	Year           int32
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ServiceRequestFilter narrows a service request listing. Zero values mean
// "no filter" for that dimension.
type ServiceRequestFilter struct {
	CustomerID int64
	Status     ServiceStatus
}

type ServiceRequest struct {
	ID          int64
	VehicleID   int64
	CustomerID  int64
	AdvisorID   int64
	Description string
	Status      ServiceStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
