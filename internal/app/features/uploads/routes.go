// internal/app/features/uploads/routes.go
package uploads

import (
	"github.com/dalemusser/dealerhub/internal/app/system/proxy"
	"github.com/go-chi/chi/v5"
)

// Routes serves POST / (mounted at /api/uploads).
func Routes(f *proxy.Forwarder) chi.Router {
	r := chi.NewRouter()
	r.Post("/", f.Handle(Upload))
	return r
}
