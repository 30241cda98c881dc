// internal/app/features/businessentry/routes.go
package businessentry

import (
	"github.com/dalemusser/dealerhub/internal/app/system/proxy"
	"github.com/go-chi/chi/v5"
)

// Routes serves the business entry API (mounted at /api/businessentry).
func Routes(f *proxy.Forwarder) chi.Router {
	r := chi.NewRouter()

	list := f.Handle(Collection)
	r.Get("/", list)
	r.Post("/", list)

	item := f.Handle(Item)
	r.Get("/{id}", item)
	r.Put("/{id}", item)
	r.Delete("/{id}", item)

	return r
}
