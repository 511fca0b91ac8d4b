package entity

import "time"

// Roles válidos para User. Coinciden con el claim role del JWT.
const (
	RoleAdmin   = "admin"
	RolePlanner = "planner"
	RoleBuyer   = "buyer"
	RoleViewer  = "viewer"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User usuario de la plataforma de planeación. PlantID vacío = todas las plantas de la organización.
type User struct {
	ID             string
	OrganizationID string
	PlantID        string
	Email          string
	PasswordHash   string // bcrypt
	Name           string
	Role           string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RolePlanner, RoleBuyer, RoleViewer:
		return true
	}
	return false
}
