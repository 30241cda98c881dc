// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/dealerhub/internal/app/system/auth"
	"github.com/dalemusser/dealerhub/internal/app/system/authz"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr auth.SessionStore
}

func NewHandler(sessionMgr auth.SessionStore, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

// ServeLogout handles GET and POST /logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("user signed out", zap.String("user_id", u.ID), zap.String("role", u.Role))
	}

	if err := h.SessionMgr.Clear(w, r); err != nil {
		h.Log.Error("logout: clear session", zap.Error(err))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation to "/".
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", authz.PublicRoot)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, authz.PublicRoot, http.StatusSeeOther)
}
