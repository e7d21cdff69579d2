package domain

import "strings"

// Role represents a staff account tier
type Role string

const (
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
)

// Valid reports whether r is one of the two account tiers
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleStaff
}

// IsManager reports whether the role grants account administration
func (r Role) IsManager() bool {
	return r == RoleManager
}

// ParseRole parses a role supplied at the API boundary. Empty input defaults to STAFF.
func ParseRole(value string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "":
		return RoleStaff, nil
	case string(RoleManager):
		return RoleManager, nil
	case string(RoleStaff):
		return RoleStaff, nil
	}
	return "", NewValidationError("role must be MANAGER or STAFF")
}
