// internal/app/features/apiauth/endpoints.go
package apiauth

import (
	"github.com/dalemusser/dealerhub/internal/app/system/proxy"
	"github.com/dalemusser/dealerhub/internal/app/system/timeouts"
)

// Login exchanges credentials for a token. No Authorization is required.
var Login = proxy.Endpoint{
	Name:     "login",
	Path:     "/auth/login",
	Fallback: "Login failed.",
	Timeout:  timeouts.Login,
}

// RegisterAssociate creates an associate account on behalf of the caller.
var RegisterAssociate = proxy.Endpoint{
	Name:        "register_associate",
	Path:        "/auth/register-associate",
	RequireAuth: true,
	Fallback:    "Failed to register associate.",
}
