package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/dalemusser/dealerhub/internal/app/system/auth"
	"github.com/google/uuid"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// UserWithRole returns a TestUser carrying role.
func UserWithRole(role string) TestUser {
	return TestUser{
		ID:    uuid.NewString(),
		Name:  "Test " + role,
		Email: role + "@test.com",
		Role:  role,
	}
}

// AdminUser returns a TestUser with admin role.
func AdminUser() TestUser { return UserWithRole("admin") }

// OwnerUser returns a TestUser with owner role.
func OwnerUser() TestUser { return UserWithRole("owner") }

// RMUser returns a TestUser with rm role.
func RMUser() TestUser { return UserWithRole("rm") }

// RMAdminUser returns a TestUser with rmadmin role.
func RMAdminUser() TestUser { return UserWithRole("rmadmin") }

// AssociateUser returns a TestUser with associate role.
func AssociateUser() TestUser { return UserWithRole("associate") }

// SessionFor builds a live session for user with token.
func SessionFor(user TestUser, token string) *auth.Session {
	return &auth.Session{
		Token: token,
		User: auth.SessionUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// WithUser adds a session for user to the request context.
// This bypasses the session middleware and injects it directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestSession(r, SessionFor(user, "test-token"))
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user session in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	location := r.Header().Get("Location")
	if location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
