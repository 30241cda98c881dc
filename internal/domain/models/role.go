// internal/domain/models/role.go
package models

import "strings"

// Role identifies which dashboard sections a user may reach.
// The wire format is a plain string; ParseRole is the only way in.
type Role string

const (
	RoleAdmin               Role = "admin"
	RoleSuperAdmin          Role = "superadmin"
	RoleOwner               Role = "owner"
	RoleExecutive           Role = "executive"
	RoleRM                  Role = "rm"
	RoleRelationshipManager Role = "relationship-manager"
	RoleAssociate           Role = "associate"
	RolePOS                 Role = "pos"
	RoleRMAdmin             Role = "rmadmin"
)

var knownRoles = map[Role]struct{}{
	RoleAdmin:               {},
	RoleSuperAdmin:          {},
	RoleOwner:               {},
	RoleExecutive:           {},
	RoleRM:                  {},
	RoleRelationshipManager: {},
	RoleAssociate:           {},
	RolePOS:                 {},
	RoleRMAdmin:             {},
}

// NormalizeRole trims and lowercases a role string without checking it.
func NormalizeRole(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseRole normalizes s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(NormalizeRole(s))
	_, ok := knownRoles[r]
	return r, ok
}

func (r Role) String() string { return string(r) }
