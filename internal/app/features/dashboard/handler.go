// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dalemusser/dealerhub/internal/app/system/authz"
	"github.com/dalemusser/dealerhub/internal/app/system/timeouts"
	"github.com/dalemusser/dealerhub/internal/app/system/upstream"
	"go.uber.org/zap"
)

// Page-level messages shown when upstream data could not be loaded.
const (
	MsgLoadFailed     = "We couldn't load this data right now. Please try again."
	MsgSessionExpired = "Your session has expired. Please sign in again."
	MsgNotPermitted   = "You don't have access to this data."
)

// DataSource fetches decoded upstream payloads.
type DataSource interface {
	GetJSON(ctx context.Context, path, token string, query url.Values, out any) error
}

// TokenSource yields the signed-in user's upstream token.
type TokenSource interface {
	ValidAuthToken(r *http.Request) (string, bool)
}

type Handler struct {
	Data   DataSource
	Tokens TokenSource
	Log    *zap.Logger
}

func NewHandler(data DataSource, tokens TokenSource, logger *zap.Logger) *Handler {
	return &Handler{
		Data:   data,
		Tokens: tokens,
		Log:    logger,
	}
}

// ServeDashboard sends the user to their role's landing page.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, authz.PublicRoot, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, authz.LandingPath(role), http.StatusSeeOther)
}

// fetch loads path into out with the caller's token and returns the message
// to show when it fails ("" on success).
func (h *Handler) fetch(r *http.Request, path string, query url.Values, out any) string {
	token, ok := h.Tokens.ValidAuthToken(r)
	if !ok {
		return MsgSessionExpired
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upstream(), h.Log, "dashboard "+path)
	defer cancel()

	err := h.Data.GetJSON(ctx, path, token, query, out)
	if err == nil {
		return ""
	}

	var se *upstream.StatusError
	if errors.As(err, &se) {
		h.Log.Warn("dashboard data rejected by upstream",
			zap.String("upstream_path", path),
			zap.Int("status", se.Status),
			zap.String("message", se.Message))
		switch se.Status {
		case http.StatusUnauthorized:
			return MsgSessionExpired
		case http.StatusForbidden:
			return MsgNotPermitted
		}
		return MsgLoadFailed
	}

	h.Log.Error("dashboard data fetch failed",
		zap.String("upstream_path", path),
		zap.Error(err))
	return MsgLoadFailed
}
