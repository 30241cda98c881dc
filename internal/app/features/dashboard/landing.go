// internal/app/features/dashboard/landing.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

var (
	cardBusinessEntries = card{"Business entries", "Policies written through the dealer network.", "/dashboard/admin/business-entries"}
	cardBrokers         = card{"Brokers", "Broker names available for new entries.", "/dashboard/admin/brokers"}
	cardRMManagement    = card{"RM management", "Relationship managers and their associates.", "/dashboard/rm-management"}
	cardRMProfile       = card{"My profile", "Your relationship manager record.", "/dashboard/rm/profile"}
	cardAssocProfile    = card{"My profile", "Your associate record and payout details.", "/dashboard/associate/profile"}
)

func (h *Handler) serveHome(w http.ResponseWriter, r *http.Request, title string, cards ...card) {
	data := homeData{
		BaseVM:  newBase(r, title),
		Heading: title,
		Cards:   cards,
	}
	h.Log.Debug("dashboard served", zap.String("path", r.URL.Path), zap.String("user", data.UserName))
	templates.Render(w, r, "dashboard_home", data)
}

func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	h.serveHome(w, r, "Admin Dashboard", cardBusinessEntries, cardBrokers, cardRMManagement)
}

func (h *Handler) ServeOwner(w http.ResponseWriter, r *http.Request) {
	h.serveHome(w, r, "Owner Dashboard")
}

func (h *Handler) ServeExecutive(w http.ResponseWriter, r *http.Request) {
	h.serveHome(w, r, "Executive Dashboard")
}

func (h *Handler) ServeRM(w http.ResponseWriter, r *http.Request) {
	h.serveHome(w, r, "Relationship Manager Dashboard", cardRMProfile)
}

func (h *Handler) ServeAssociate(w http.ResponseWriter, r *http.Request) {
	h.serveHome(w, r, "Associate Dashboard", cardAssocProfile)
}
