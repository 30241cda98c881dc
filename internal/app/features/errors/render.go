// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/dealerhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderForbidden shows a friendly access error page with a message.
// If backURL is empty, the user's own dashboard is used.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	render(w, r, http.StatusForbidden, "Access denied", msg, backURL, "")
}

func render(w http.ResponseWriter, r *http.Request, status int, heading, msg, backURL, incident string) {
	vm := viewdata.NewBaseVM(r, heading, "/")
	if backURL == "" {
		backURL = vm.HomePath
	}
	vm.BackURL = backURL

	w.WriteHeader(status)
	templates.Render(w, r, "error_page", pageData{
		BaseVM:   vm,
		Heading:  heading,
		Message:  msg,
		Incident: incident,
	})
}
