package model

import "time"

// Role determines which lifecycle operations an actor may request.
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleRestaurateur Role = "restaurateur"
	RoleAdmin        Role = "admin"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleRestaurateur, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account: diner, restaurant owner or admin.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Actor identifies who requests an operation.
type Actor struct {
	UserID int64
	Role   Role
}
