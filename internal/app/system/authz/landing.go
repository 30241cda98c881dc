// internal/app/system/authz/landing.go
package authz

import "github.com/dalemusser/dealerhub/internal/domain/models"

// Public and dashboard landing routes.
const (
	PublicRoot    = "/"
	ForbiddenPath = "/forbidden"
	AdminPath     = "/dashboard/admin"
	OwnerPath     = "/dashboard/owner"
	ExecutivePath = "/dashboard/executive"
	RMPath        = "/dashboard/rm"
	AssociatePath = "/dashboard/associate"
)

var landingPaths = map[models.Role]string{
	models.RoleAdmin:               AdminPath,
	models.RoleSuperAdmin:          AdminPath,
	models.RoleExecutive:           ExecutivePath,
	models.RoleOwner:               OwnerPath,
	models.RoleRM:                  RMPath,
	models.RoleRelationshipManager: RMPath,
	models.RoleAssociate:           AssociatePath,
	models.RolePOS:                 AssociatePath,
}

// LandingPath returns the dashboard a role lands on after login or after a
// denied navigation. Missing or unrecognized roles get the admin dashboard.
func LandingPath(role string) string {
	r, ok := models.ParseRole(role)
	if !ok {
		return AdminPath
	}
	if p, ok := landingPaths[r]; ok {
		return p
	}
	return AdminPath
}
