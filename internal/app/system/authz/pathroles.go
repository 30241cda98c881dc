// internal/app/system/authz/pathroles.go
package authz

import (
	"sort"
	"strings"

	"github.com/dalemusser/dealerhub/internal/domain/models"
)

// PathRule grants a set of roles access to every path starting with Prefix.
type PathRule struct {
	Prefix string
	Roles  []models.Role
}

// PathRoles is an immutable prefix → allowed-roles table. The most
// specific (longest) matching prefix decides.
type PathRoles struct {
	rules []compiledRule // longest prefix first; equal lengths keep table order
}

type compiledRule struct {
	prefix  string
	allowed map[models.Role]struct{}
}

// NewPathRoles compiles rules into a lookup table.
func NewPathRoles(rules ...PathRule) PathRoles {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		allowed := make(map[models.Role]struct{}, len(r.Roles))
		for _, role := range r.Roles {
			allowed[role] = struct{}{}
		}
		compiled = append(compiled, compiledRule{prefix: r.Prefix, allowed: allowed})
	}
	sort.SliceStable(compiled, func(i, j int) bool {
		return len(compiled[i].prefix) > len(compiled[j].prefix)
	})
	return PathRoles{rules: compiled}
}

// DefaultPathRoles is the dashboard access policy.
//
// rmadmin is granted the whole /dashboard/admin tree, not only the
// rm-management pages: it has no landing page of its own and falls back to
// /dashboard/admin.
func DefaultPathRoles() PathRoles {
	return NewPathRoles(
		PathRule{Prefix: "/dashboard/admin", Roles: []models.Role{
			models.RoleAdmin, models.RoleSuperAdmin, models.RoleRMAdmin,
		}},
		PathRule{Prefix: "/dashboard/owner", Roles: []models.Role{
			models.RoleOwner, models.RoleAdmin, models.RoleSuperAdmin,
		}},
		PathRule{Prefix: "/dashboard/executive", Roles: []models.Role{
			models.RoleExecutive, models.RoleAdmin, models.RoleSuperAdmin,
		}},
		PathRule{Prefix: "/dashboard/rm", Roles: []models.Role{
			models.RoleRM, models.RoleRelationshipManager, models.RoleAdmin, models.RoleSuperAdmin,
		}},
		PathRule{Prefix: "/dashboard/rm-management", Roles: []models.Role{
			models.RoleAdmin, models.RoleSuperAdmin, models.RoleRMAdmin,
		}},
		PathRule{Prefix: "/dashboard/associate", Roles: []models.Role{
			models.RoleAssociate, models.RolePOS, models.RoleAdmin, models.RoleSuperAdmin,
		}},
	)
}

// Rule is the outcome of a path lookup.
type Rule struct {
	Prefix  string
	allowed map[models.Role]struct{}
}

// Allows reports whether role (any case, any surrounding space) may enter.
// Unrecognized roles are never allowed.
func (r Rule) Allows(role string) bool {
	parsed, ok := models.ParseRole(role)
	if !ok {
		return false
	}
	_, has := r.allowed[parsed]
	return has
}

// Lookup returns the most specific rule whose prefix starts path.
// ok is false when path is unprotected.
func (p PathRoles) Lookup(path string) (Rule, bool) {
	for _, r := range p.rules {
		if strings.HasPrefix(path, r.prefix) {
			return Rule{Prefix: r.prefix, allowed: r.allowed}, true
		}
	}
	return Rule{}, false
}
