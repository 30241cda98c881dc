package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/dealerhub/internal/app/features/logout"
	"github.com/dalemusser/dealerhub/internal/app/system/auth"
	"github.com/dalemusser/dealerhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*logout.Handler, *auth.SessionManager) {
	t.Helper()
	logger := zap.NewNop()
	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return logout.NewHandler(sessionMgr, logger), sessionMgr
}

func TestServeLogout_RedirectsToHome(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	handler.ServeLogout(rec, testutil.NewAuthenticatedRequest("GET", "/logout", testutil.OwnerUser()))

	rec.AssertRedirect(t, "/")
}

func TestServeLogout_ClearsSessionCookie(t *testing.T) {
	handler, sm := newTestHandler(t)

	// Sign in first so the request carries a real cookie.
	saved := httptest.NewRecorder()
	if err := sm.Save(saved, httptest.NewRequest("POST", "/login", nil), testutil.SessionFor(testutil.AdminUser(), "tok")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	req := httptest.NewRequest("GET", "/logout", nil)
	for _, c := range saved.Result().Cookies() {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	handler.ServeLogout(rec, req)

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge < 0 {
			found = true
		}
	}
	if !found {
		t.Error("expected session cookie to be deleted")
	}
}

func TestServeLogout_HTMX(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/logout", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeLogout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/" {
		t.Errorf("HX-Redirect: got %q, want /", got)
	}
}

func TestServeLogout_WithoutSession(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	handler.ServeLogout(rec, httptest.NewRequest("GET", "/logout", nil))

	rec.AssertRedirect(t, "/")
}
