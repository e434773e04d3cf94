package entity

import "time"

type User struct {
	ID        int64
	FullName  string
	Email     string
	Mobile    string
	Password  string // hashed
	Role      Role
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingRegistration is the profile captured at Register time, held until the
// registration OTP is verified. It never outlives the OTP it was issued with.
type PendingRegistration struct {
	FullName string
	Email    string
	Mobile   string
	Password string // hashed
	Role     Role
}

type NewUser struct {
	ID       int64
	FullName string
	Email    string
	Mobile   string
	Password string // hashed
	Role     Role
	Status   UserStatus
}
