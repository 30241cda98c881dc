package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	DefaultSessionName = "dealerhub-session"

	tokenKey     = "token"
	expiresAtKey = "expires_at"
	userIDKey    = "user_id"
	userName     = "user_name"
	userEmail    = "user_email"
	userRole     = "user_role"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session model                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is the profile part of the session, as returned by the
// upstream login call.
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Session is the authenticated user's upstream token plus profile.
type Session struct {
	Token     string
	User      SessionUser
	ExpiresAt time.Time // zero means "until the cookie goes away"
}

// Expired reports whether the token is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Valid reports whether the session carries a usable token at now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && !s.Expired(now)
}

// SessionStore is the persistence collaborator for sessions.
// Load returns (nil, nil) when the browser holds no session.
type SessionStore interface {
	Load(r *http.Request) (*Session, error)
	Save(w http.ResponseWriter, r *http.Request, s *Session) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager keeps sessions in a signed cookie and exposes them to
// handlers through the request context.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	ttl   time.Duration
	log   *zap.Logger
	now   func() time.Time
}

var _ SessionStore = (*SessionManager)(nil)

// NewSessionManager builds a cookie-backed session manager.
//
// Cookies are always SameSite=Lax; in production (secure=true) they are also
// Secure. In local dev over http://localhost, use secure=false so cookies
// are accepted.
func NewSessionManager(sessionKey, name, domain string, ttl time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	opts.SameSite = http.SameSiteLaxMode
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("ttl", ttl))

	return &SessionManager{
		store: store,
		name:  name,
		ttl:   ttl,
		log:   logger,
		now:   time.Now,
	}, nil
}

// TTL is the configured cookie lifetime, used as the token expiry when the
// upstream token carries none.
func (sm *SessionManager) TTL() time.Duration { return sm.ttl }

// SetClock overrides the time source. Tests only.
func (sm *SessionManager) SetClock(now func() time.Time) { sm.now = now }

// Load reads the session cookie. A cookie that no longer decodes (for
// example after a key rotation) counts as no session.
func (sm *SessionManager) Load(r *http.Request) (*Session, error) {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			sm.log.Debug("discarding undecodable session cookie", zap.Error(err))
			return nil, nil
		}
		return nil, err
	}

	token := getString(sess, tokenKey)
	if token == "" {
		return nil, nil
	}

	s := &Session{
		Token: token,
		User: SessionUser{
			ID:    getString(sess, userIDKey),
			Name:  getString(sess, userName),
			Email: getString(sess, userEmail),
			Role:  getString(sess, userRole),
		},
	}
	if unix, ok := sess.Values[expiresAtKey].(int64); ok && unix > 0 {
		s.ExpiresAt = time.Unix(unix, 0)
	}
	return s, nil
}

// Save writes s into the session cookie.
func (sm *SessionManager) Save(w http.ResponseWriter, r *http.Request, s *Session) error {
	sess, _ := sm.store.Get(r, sm.name) // a fresh session is returned on decode errors

	sess.Values[tokenKey] = s.Token
	sess.Values[userIDKey] = s.User.ID
	sess.Values[userName] = s.User.Name
	sess.Values[userEmail] = s.User.Email
	sess.Values[userRole] = s.User.Role
	if s.ExpiresAt.IsZero() {
		delete(sess.Values, expiresAtKey)
	} else {
		sess.Values[expiresAtKey] = s.ExpiresAt.Unix()
	}
	return sess.Save(r, w)
}

// Clear deletes the session cookie.
func (sm *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	// Ensure the deletion-cookie matches the original store settings.
	opts := *sm.store.Options
	opts.MaxAge = -1
	sess.Options = &opts
	return sess.Save(r, w)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Request context                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentSessionKey ctxKey = "currentSession"

// LoadSession injects the browser's session into the request context.
// Expired sessions are destroyed instead of injected.
func (sm *SessionManager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := sm.Load(r)
		if err != nil {
			sm.log.Warn("session load failed", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if s == nil {
			next.ServeHTTP(w, r)
			return
		}
		if s.Expired(sm.now()) {
			sm.log.Debug("session token expired",
				zap.String("user_id", s.User.ID),
				zap.Time("expires_at", s.ExpiresAt))
			if err := sm.Clear(w, r); err != nil {
				sm.log.Warn("clear expired session failed", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, withSession(r, s))
	})
}

// GetAuthSession returns the session of the current request, or false when
// there is none.
func (sm *SessionManager) GetAuthSession(r *http.Request) (*Session, bool) {
	if s, ok := CurrentSession(r); ok {
		return s, true
	}
	s, err := sm.Load(r)
	if err != nil || s == nil {
		return nil, false
	}
	return s, true
}

// ValidAuthToken returns the session token when it exists and has not
// expired.
func (sm *SessionManager) ValidAuthToken(r *http.Request) (string, bool) {
	s, ok := sm.GetAuthSession(r)
	if !ok || !s.Valid(sm.now()) {
		return "", false
	}
	return s.Token, true
}

// Now returns the manager's current time.
func (sm *SessionManager) Now() time.Time { return sm.now() }

// CurrentSession returns the session injected by LoadSession.
func CurrentSession(r *http.Request) (*Session, bool) {
	s, ok := r.Context().Value(currentSessionKey).(*Session)
	return s, ok && s != nil
}

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	s, ok := CurrentSession(r)
	if !ok {
		return nil, false
	}
	return &s.User, true
}

// RequireSignedIn ensures there is a session in context (set by LoadSession).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentSession(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		ret := url.QueryEscape(currentURI(r))

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", "/login?return="+ret)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if WantsHTML(r) {
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// WithTestSession injects s into the request context. Tests only.
func WithTestSession(r *http.Request, s *Session) *http.Request {
	return withSession(r, s)
}

// helpers

func withSession(r *http.Request, s *Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentSessionKey, s))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

// WantsHTML treats a request as a page navigation if it is HTMX or
// accepts text/html.
func WantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
