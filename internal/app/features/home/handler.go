// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/dealerhub/internal/app/system/authz"
	"github.com/dalemusser/dealerhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the public landing page.
type Handler struct {
	Sessions authz.SessionReader
	Log      *zap.Logger
}

func NewHandler(sessions authz.SessionReader, logger *zap.Logger) *Handler {
	return &Handler{
		Sessions: sessions,
		Log:      logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot sends signed-in users to their dashboard and shows everyone else
// the welcome page.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.Sessions.GetAuthSession(r); ok && s.Token != "" {
		http.Redirect(w, r, authz.LandingPath(s.User.Role), http.StatusSeeOther)
		return
	}

	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "Welcome", "/"),
	}

	templates.Render(w, r, "home", data)
}
