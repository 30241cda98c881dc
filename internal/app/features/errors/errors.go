// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/dealerhub/internal/app/system/viewdata"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Heading  string
	Message  string
	Incident string
}

// Handler is the errors feature handler.
// No upstream needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders the "page not found" page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, "Page not found", "The page you asked for does not exist.", "", "")
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "You don't have permission to view this page.", "")
}
