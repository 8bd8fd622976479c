package user

import (
	"time"
)

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// CanDecide reports whether the role may approve or reject requests at all.
// Team scope for managers is enforced per request, not here.
func (r Role) CanDecide() bool {
	return r == RoleManager || r == RoleAdmin
}

// Employee is the directory entry consulted for request ownership and
// approval scope.
type Employee struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Team         *string
	IsActive     bool
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Eligible reports whether the employee may own live requests: active and
// not soft-deleted.
func (e *Employee) Eligible() bool {
	return e.IsActive && e.DeletedAt == nil
}

type Profile struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Role  string  `json:"role"`
	Team  *string `json:"team,omitempty"`
}

func (e *Employee) ToProfile() Profile {
	return Profile{
		ID:    e.ID,
		Name:  e.Name,
		Email: e.Email,
		Role:  string(e.Role),
		Team:  e.Team,
	}
}
