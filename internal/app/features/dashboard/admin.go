// internal/app/features/dashboard/admin.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/dealerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeBusinessEntries lists business entries from GET /businessentry.
func (h *Handler) ServeBusinessEntries(w http.ResponseWriter, r *http.Request) {
	var entries []models.BusinessEntry
	errMsg := h.fetch(r, "/businessentry", nil, &entries)

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			str(e.PolicyNumber),
			str(e.CustomerName),
			str(e.InsuranceCompany),
			str(e.VehicleNumber),
			money(e.Premium),
			str(e.Status),
			str(e.CreatedAt),
		})
	}

	templates.Render(w, r, "dashboard_list", listData{
		BaseVM:  newBase(r, "Business entries"),
		Heading: "Business entries",
		Columns: []string{"Policy", "Customer", "Insurer", "Vehicle", "Premium", "Status", "Created"},
		Rows:    rows,
		Empty:   "No business entries yet.",
		Error:   errMsg,
	})
}

// ServeBrokers lists broker names from GET /brokername.
func (h *Handler) ServeBrokers(w http.ResponseWriter, r *http.Request) {
	var brokers []models.Broker
	errMsg := h.fetch(r, "/brokername", nil, &brokers)

	rows := make([][]string, 0, len(brokers))
	for _, b := range brokers {
		rows = append(rows, []string{str(b.Name), str(b.CreatedAt)})
	}

	templates.Render(w, r, "dashboard_list", listData{
		BaseVM:  newBase(r, "Brokers"),
		Heading: "Brokers",
		Columns: []string{"Name", "Created"},
		Rows:    rows,
		Empty:   "No brokers yet.",
		Error:   errMsg,
	})
}
