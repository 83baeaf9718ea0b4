// Package authorization defines the user roles consumed from the external
// identity provider and the visibility rules derived from them.
package authorization

import "fmt"

type UserRole string

const (
	RoleAdmin         UserRole = "admin"
	RoleSupervisor    UserRole = "supervisor"
	RoleFieldEngineer UserRole = "field_engineer"
)

var validRoles = map[UserRole]bool{
	RoleAdmin:         true,
	RoleSupervisor:    true,
	RoleFieldEngineer: true,
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	return validRoles[r]
}

// CanViewAllTickets reports whether the role sees every ticket. Non-admin
// roles are restricted to tickets they created or are assigned to.
func (r UserRole) CanViewAllTickets() bool {
	return r == RoleAdmin
}

// CanAssignTickets reports whether the role may assign tickets to engineers.
func (r UserRole) CanAssignTickets() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// CanVerifyTickets reports whether the role may mark resolved work verified.
func (r UserRole) CanVerifyTickets() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// CanDeleteTickets reports whether the role may permanently delete tickets.
func (r UserRole) CanDeleteTickets() bool {
	return r == RoleAdmin
}

func NewUserRole(s string) (UserRole, error) {
	r := UserRole(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid user role: %s", s)
	}
	return r, nil
}
