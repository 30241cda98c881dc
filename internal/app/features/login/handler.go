// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/dealerhub/internal/app/features/errors"
	"github.com/dalemusser/dealerhub/internal/app/system/auth"
	"github.com/dalemusser/dealerhub/internal/app/system/authz"
	"github.com/dalemusser/dealerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/dealerhub/internal/app/system/ratelimit"
	"github.com/dalemusser/dealerhub/internal/app/system/timeouts"
	"github.com/dalemusser/dealerhub/internal/app/system/upstream"
	"github.com/dalemusser/dealerhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Messages shown on the login form.
const (
	MsgLoginFailed     = "Login failed."
	MsgEmailInvalid    = "Please enter a valid email address."
	MsgPasswordMissing = "Please enter your password."
	MsgUnavailable     = "Login is unavailable right now. Please try again."
)

// Upstream is the part of the upstream client the login exchange needs.
type Upstream interface {
	Forward(ctx context.Context, req upstream.Request) (upstream.Result, error)
}

type Handler struct {
	Up         Upstream
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger

	validate *validator.Validate
}

func NewHandler(up Upstream, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Up:         up,
		SessionMgr: sessionMgr,
		Limiter:    limiter,
		ErrLog:     errLog,
		Log:        logger,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := query.Get(r, "return")

	// Already signed in: go straight to the user's dashboard.
	if s, ok := h.SessionMgr.GetAuthSession(r); ok && s.Valid(h.SessionMgr.Now()) {
		http.Redirect(w, r, urlutil.SafeReturn(ret, "", authz.LandingPath(s.User.Role)), http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: ret,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	in := loginInput{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	ret := r.FormValue("return")

	if err := h.validate.Struct(in); err != nil {
		h.renderFormWithError(w, r, http.StatusBadRequest, validationMessage(err), in.Email, ret)
		return
	}

	if h.Limiter != nil && !h.Limiter.Check(r.Context(), r, in.Email) {
		h.Log.Warn("login rate limit reached", zap.String("email", in.Email))
		h.renderFormWithError(w, r, http.StatusTooManyRequests, ratelimit.MsgTooManyAttempts, in.Email, ret)
		return
	}

	body, err := json.Marshal(in)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "encode login request failed", err, MsgUnavailable, "/login")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Login(), h.Log, "login")
	defer cancel()

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")
	res, err := h.Up.Forward(ctx, upstream.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Header: header,
		Body:   body,
	})
	if err != nil {
		h.Log.Error("login upstream call failed", zap.Error(err))
		h.renderFormWithError(w, r, http.StatusBadGateway, MsgUnavailable, in.Email, ret)
		return
	}
	if !res.OK() {
		msg := htmlsanitize.Message(upstream.MessageOf(res.Body), MsgLoginFailed)
		h.Log.Info("login rejected by upstream",
			zap.String("email", in.Email),
			zap.Int("status", res.Status))
		h.renderFormWithError(w, r, http.StatusUnauthorized, msg, in.Email, ret)
		return
	}

	grant, err := parseGrant(res.Body)
	if err != nil {
		h.Log.Error("login response unusable", zap.Error(err), zap.Int("status", res.Status))
		h.renderFormWithError(w, r, http.StatusBadGateway, MsgLoginFailed, in.Email, ret)
		return
	}

	now := h.SessionMgr.Now()
	sess := &auth.Session{
		Token:     grant.Token,
		User:      grant.User,
		ExpiresAt: auth.TokenExpiry(grant.Token, now.Add(h.SessionMgr.TTL())),
	}
	if err := h.SessionMgr.Save(w, r, sess); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, MsgUnavailable, "/login")
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetEmail(r.Context(), in.Email)
	}

	h.Log.Info("user signed in",
		zap.String("user_id", sess.User.ID),
		zap.String("role", sess.User.Role),
		zap.Time("expires_at", sess.ExpiresAt))

	dest := urlutil.SafeReturn(ret, "", authz.LandingPath(sess.User.Role))
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, status int, msg, email, ret string) {
	w.WriteHeader(status)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: ret,
	})
}

// validationMessage maps the first failing field to a form message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Password" {
		return MsgPasswordMissing
	}
	return MsgEmailInvalid
}
