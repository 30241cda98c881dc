// internal/app/system/authz/roles.go
package authz

import (
	"net/http"

	"github.com/dalemusser/dealerhub/internal/app/system/auth"
	"github.com/dalemusser/dealerhub/internal/domain/models"
)

// UserCtx returns the user's role (lowercased), name, and a found flag.
// If no session is present it returns "visitor", "", false.
func UserCtx(r *http.Request) (role string, name string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", false
	}
	return models.NormalizeRole(user.Role), user.Name, true
}

// HasAnyRole reports whether the current request's user has any of the given roles.
// Returns false if no user is present (i.e., not signed in).
func HasAnyRole(r *http.Request, roles ...models.Role) bool {
	role, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	cur, known := models.ParseRole(role)
	if !known {
		return false
	}
	for _, want := range roles {
		if cur == want {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the current request's user is an admin.
// Superadmins are also considered admins for permission purposes.
func IsAdmin(r *http.Request) bool {
	return HasAnyRole(r, models.RoleAdmin, models.RoleSuperAdmin)
}
