package entity

import "strings"

// Role identifies what a user is allowed to do in the workshop.
type Role int16

const (
	// RoleUnknown means the role is not known / not set.
	RoleUnknown Role = 0

	// RoleAdmin can manage everything.
	RoleAdmin Role = 1

	// RoleServiceAdvisor handles incoming service requests.
	RoleServiceAdvisor Role = 2

	// RoleCustomer owns vehicles and files service requests.
	RoleCustomer Role = 3
)

func RoleFromString(str string) Role {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "admin":
		return RoleAdmin
	case "serviceadvisor":
		return RoleServiceAdvisor
	case "customer":
		return RoleCustomer
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleServiceAdvisor:
		return "serviceadvisor"
	case RoleCustomer:
		return "customer"
	default:
		return "unknown"
	}
}

func (r Role) IsUnknown() bool {
	switch r {
	case RoleAdmin, RoleServiceAdvisor, RoleCustomer:
		return false
	default:
		return true
	}
}

// UserStatus tracks the account lifecycle: a user starts pending until the
// registration OTP is verified, then becomes active.
type UserStatus int16

const (
	// UserStatusUnknown means the status is not known / not set.
	UserStatusUnknown UserStatus = 0

	// UserStatusPending means the user registered but has not verified the OTP.
	UserStatusPending UserStatus = 1

	// UserStatusActive means the user is verified and allowed to use the app.
	UserStatusActive UserStatus = 2

	// UserStatusDisabled means the user is blocked from using the app.
	UserStatusDisabled UserStatus = 3
)

func (us UserStatus) String() string {
	switch us {
	case UserStatusPending:
		return "Pending"
	case UserStatusActive:
		return "Active"
	case UserStatusDisabled:
		return "Disabled"
	default:
		return "Unknown"
	}
}

func (us UserStatus) Ensure() UserStatus {
	switch us {
	case UserStatusPending:
		return UserStatusPending
	case UserStatusActive:
		return UserStatusActive
	case UserStatusDisabled:
		return UserStatusDisabled
	default:
		return UserStatusUnknown
	}
}

// OTPPurpose distinguishes which flow an OTP was issued for, so a login code
// cannot complete a registration and vice versa.
type OTPPurpose int16

const (
	OTPPurposeUnknown      OTPPurpose = 0
	OTPPurposeRegistration OTPPurpose = 1
	OTPPurposeLogin        OTPPurpose = 2
)

func OTPPurposeFromString(str string) OTPPurpose {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "registration":
		return OTPPurposeRegistration
	case "login":
		return OTPPurposeLogin
	default:
		return OTPPurposeUnknown
	}
}

func (p OTPPurpose) String() string {
	switch p {
	case OTPPurposeRegistration:
		return "registration"
	case OTPPurposeLogin:
		return "login"
	default:
		return "unknown"
	}
}
