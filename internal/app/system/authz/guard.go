// internal/app/system/authz/guard.go
package authz

import (
	"net/http"
	"time"

	"github.com/dalemusser/dealerhub/internal/app/system/auth"
	"github.com/dalemusser/dealerhub/internal/domain/models"
	"go.uber.org/zap"
)

// SessionReader is the part of the session layer the guard needs.
type SessionReader interface {
	GetAuthSession(r *http.Request) (*auth.Session, bool)
}

// Decision is the guard's verdict for one request.
type Decision struct {
	Authorized bool
	Redirect   string // set when !Authorized
	SignedIn   bool
}

// Guard gates a page tree on session, role and path.
type Guard struct {
	sessions SessionReader
	paths    PathRoles
	log      *zap.Logger
	now      func() time.Time
}

// NewGuard builds a guard over the given session reader and access table.
func NewGuard(sessions SessionReader, paths PathRoles, logger *zap.Logger) *Guard {
	return &Guard{
		sessions: sessions,
		paths:    paths,
		log:      logger,
		now:      time.Now,
	}
}

// Decide evaluates the request without writing anything.
//
// A denied role is sent to LandingPath(role), except when that landing sits
// under the rule that denied it; redirecting there would loop, so the
// decision is ForbiddenPath instead.
func (g *Guard) Decide(r *http.Request) Decision {
	s, ok := g.sessions.GetAuthSession(r)
	if !ok || !s.Valid(g.now()) {
		return Decision{Redirect: PublicRoot}
	}

	role := models.NormalizeRole(s.User.Role)
	if rule, found := g.paths.Lookup(r.URL.Path); found && !rule.Allows(role) {
		g.log.Warn("dashboard access denied",
			zap.String("role", role),
			zap.String("path", r.URL.Path),
			zap.String("rule", rule.Prefix))
		return Decision{Redirect: g.fallback(role, rule), SignedIn: true}
	}

	return Decision{Authorized: true, SignedIn: true}
}

// fallback picks the redirect after a denial: the role's landing page, or
// the forbidden page when the landing page sits under the rule that denied it.
func (g *Guard) fallback(role string, denied Rule) string {
	landing := LandingPath(role)
	if lr, found := g.paths.Lookup(landing); found && lr.Prefix == denied.Prefix {
		return ForbiddenPath
	}
	return landing
}

// Middleware renders next only for authorized requests; everything else is
// redirected (HX-Redirect for HTMX, 303 otherwise) and nothing is rendered.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := g.Decide(r)
		if d.Authorized {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", d.Redirect)
			if d.SignedIn {
				w.WriteHeader(http.StatusForbidden)
			} else {
				w.WriteHeader(http.StatusUnauthorized)
			}
			return
		}

		http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
	})
}
