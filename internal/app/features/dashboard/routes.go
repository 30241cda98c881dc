// internal/app/features/dashboard/routes.go
package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboards under whatever mount point the top-level
// router chooses (normally "/dashboard"). guard runs before every page and
// decides, from the full request path, whether the user may see it.
func Routes(h *Handler, guard func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(guard)

	r.Get("/", h.ServeDashboard)

	r.Get("/admin", h.ServeAdmin)
	r.Get("/admin/business-entries", h.ServeBusinessEntries)
	r.Get("/admin/brokers", h.ServeBrokers)

	r.Get("/owner", h.ServeOwner)
	r.Get("/executive", h.ServeExecutive)

	r.Get("/rm", h.ServeRM)
	r.Get("/rm/profile", h.ServeRMProfile)
	r.Get("/rm-management", h.ServeRMManagement)

	r.Get("/associate", h.ServeAssociate)
	r.Get("/associate/profile", h.ServeAssociateProfile)

	return r
}
