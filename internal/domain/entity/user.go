package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is an application login.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, never plaintext past the login boundary
	Role         string // admin, staff
	IsActive     bool
	CreatedAt    time.Time
}
