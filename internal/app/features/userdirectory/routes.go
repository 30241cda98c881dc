// internal/app/features/userdirectory/routes.go
package userdirectory

import (
	"github.com/dalemusser/dealerhub/internal/app/system/proxy"
	"github.com/go-chi/chi/v5"
)

// Routes serves GET /associate (mounted at /api/users).
func Routes(f *proxy.Forwarder) chi.Router {
	r := chi.NewRouter()
	r.Get("/associate", f.Handle(Associates))
	return r
}

// ProfileRoutes serves GET / (mounted at /api/v1/profile).
func ProfileRoutes(f *proxy.Forwarder) chi.Router {
	r := chi.NewRouter()
	r.Get("/", f.Handle(Profile))
	return r
}
