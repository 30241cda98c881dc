// internal/app/features/userdirectory/endpoints.go
package userdirectory

import "github.com/dalemusser/dealerhub/internal/app/system/proxy"

// Associates lists associates; an optional userId query narrows the list
// to one relationship manager.
var Associates = proxy.Endpoint{
	Name:        "users_associate",
	Path:        "/users/associate",
	RequireAuth: true,
	Fallback:    "Failed to fetch associates.",
}

// Profile returns the caller's own profile.
var Profile = proxy.Endpoint{
	Name:        "profile",
	Path:        "/users/profile",
	RequireAuth: true,
	Fallback:    "Failed to fetch profile.",
}
