package model

import "time"

// User represents a registered customer account.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}

// Role controls which operations an identity may perform.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

// Identity is an authenticated principal.
type Identity struct {
	Principal string `json:"principal"`
	Role      Role   `json:"role"`
}

// IsStaff reports whether the identity may manage the menu and all orders.
func (i Identity) IsStaff() bool {
	return i.Role == RoleStaff
}

// Credentials pairs an identity with the bearer token that proves it.
type Credentials struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}
