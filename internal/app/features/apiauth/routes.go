// internal/app/features/apiauth/routes.go
package apiauth

import (
	"net/http"

	"github.com/dalemusser/dealerhub/internal/app/system/proxy"
	"github.com/go-chi/chi/v5"
)

// LoginRoutes serves POST / (mounted at /api/login) behind limit.
// A nil limit leaves the route unthrottled.
func LoginRoutes(f *proxy.Forwarder, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	if limit != nil {
		r.Use(limit)
	}
	r.Post("/", f.Handle(Login))
	return r
}

// RegisterRoutes serves POST / (mounted at /api/register-associate).
func RegisterRoutes(f *proxy.Forwarder) chi.Router {
	r := chi.NewRouter()
	r.Post("/", f.Handle(RegisterAssociate))
	return r
}
