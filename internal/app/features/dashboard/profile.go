// internal/app/features/dashboard/profile.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/dealerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

const profilePath = "/users/profile"

func (h *Handler) ServeAssociateProfile(w http.ResponseWriter, r *http.Request) {
	var p models.AssociateProfile
	errMsg := h.fetch(r, profilePath, nil, &p)

	var fields []field
	if errMsg == "" {
		fields = associateFields(p)
	}
	templates.Render(w, r, "dashboard_profile", profileData{
		BaseVM:  newBase(r, "My profile"),
		Heading: "Associate profile",
		Fields:  fields,
		Error:   errMsg,
	})
}

func (h *Handler) ServeRMProfile(w http.ResponseWriter, r *http.Request) {
	var p models.RMProfile
	errMsg := h.fetch(r, profilePath, nil, &p)

	var fields []field
	if errMsg == "" {
		fields = rmFields(p)
	}
	templates.Render(w, r, "dashboard_profile", profileData{
		BaseVM:  newBase(r, "My profile"),
		Heading: "Relationship manager profile",
		Fields:  fields,
		Error:   errMsg,
	})
}

func associateFields(p models.AssociateProfile) []field {
	return []field{
		{"Name", str(p.Name)},
		{"Email", str(p.Email)},
		{"Phone", str(p.Phone)},
		{"Associate code", str(p.AssociateCode)},
		{"Relationship manager", str(p.RMName)},
		{"PAN", str(p.PANNumber)},
		{"Bank", str(p.BankName)},
		{"Account number", str(p.AccountNumber)},
		{"IFSC", str(p.IFSC)},
		{"City", str(p.City)},
		{"State", str(p.State)},
		{"Status", str(p.Status)},
	}
}

func rmFields(p models.RMProfile) []field {
	return []field{
		{"Name", str(p.Name)},
		{"Email", str(p.Email)},
		{"Phone", str(p.Phone)},
		{"Employee code", str(p.EmployeeCode)},
		{"Region", str(p.Region)},
		{"Branch", str(p.Branch)},
		{"Associates", count(p.AssociatesCount)},
	}
}
