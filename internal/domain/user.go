package domain

import "time"

// Role enumerates the access levels known to the system.
type Role string

const (
	RoleAdmin           Role = "Admin"
	RoleSupportEngineer Role = "Support Engineer"
	RoleDeveloper       Role = "Developer"
	RoleManager         Role = "Manager"
)

// ValidRoles lists every assignable role.
var ValidRoles = []Role{RoleAdmin, RoleSupportEngineer, RoleDeveloper, RoleManager}

// IsValidRole reports whether r is an assignable role.
func IsValidRole(r Role) bool {
	for _, candidate := range ValidRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// User is the acting identity behind every core operation. Only Admin may
// edit locked (completed) tickets or manage accounts.
type User struct {
	ID           string
	Username     string
	FullName     string
	Role         Role
	PasswordHash string
	CreatedBy    string
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the privileged role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
