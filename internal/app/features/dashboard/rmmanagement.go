// internal/app/features/dashboard/rmmanagement.go
package dashboard

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/dealerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeRMManagement lists associates, optionally narrowed to one RM by
// ?userId=.
func (h *Handler) ServeRMManagement(w http.ResponseWriter, r *http.Request) {
	var q url.Values
	if id := strings.TrimSpace(query.Get(r, "userId")); id != "" {
		q = url.Values{"userId": {id}}
	}

	var associates []models.AssociateProfile
	errMsg := h.fetch(r, "/users/associate", q, &associates)

	rows := make([][]string, 0, len(associates))
	for _, a := range associates {
		rows = append(rows, []string{
			str(a.Name),
			str(a.AssociateCode),
			str(a.Email),
			str(a.Phone),
			str(a.RMName),
			str(a.City),
			str(a.Status),
		})
	}

	templates.Render(w, r, "dashboard_list", listData{
		BaseVM:  newBase(r, "RM management"),
		Heading: "Associates",
		Columns: []string{"Name", "Code", "Email", "Phone", "RM", "City", "Status"},
		Rows:    rows,
		Empty:   "No associates found.",
		Error:   errMsg,
	})
}
