package model

import "fmt"

// Role is the closed set of account roles the application knows
// about. It is stored as a string column but all dispatch in Go
// happens on this type rather than on raw strings, so a typo in a
// role name fails at parse time instead of silently falling through.
type Role string

const (
	RoleStudent           Role = "STUDENT"
	RoleFaculty           Role = "FACULTY"
	RoleAssociationMember Role = "ASSOCIATION_MEMBER"
	RoleAdmin             Role = "ADMIN"
)

// ParseRole converts a raw string (from the database or a JWT claim)
// into a Role. Unknown values are rejected.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleFaculty, RoleAssociationMember, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// String returns the storage form of the role.
func (r Role) String() string { return string(r) }
