// internal/app/features/health/routes.go
package health

import "github.com/go-chi/chi/v5"

// Routes serves the upstream health probe, mounted under /health.
// HEAD is answered too for load balancers that probe without a body.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	r.Head("/", h.Serve)
	return r
}
