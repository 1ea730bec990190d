package entity

import "time"

// Admin role names
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// AdminProfile is the profile blob returned by the backend on login
type AdminProfile struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AdminSession binds a console session to the backend bearer token
type AdminSession struct {
	ID        string       `json:"id"`
	Token     string       `json:"token"`
	Profile   AdminProfile `json:"profile"`
	CreatedAt time.Time    `json:"created_at"`
}
