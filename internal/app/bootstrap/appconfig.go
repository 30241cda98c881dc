// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS); everything here is
// specific to DealerHub.
type AppConfig struct {
	// Upstream REST API that owns all business data and credentials.
	UpstreamBaseURL string        // e.g. https://api.example.com/api
	UpstreamTimeout time.Duration // deadline for calls without a per-operation timeout

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: dealerhub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionTTL    time.Duration // Cookie lifetime; also the token expiry when the token carries none

	// Login throttling, per client address.
	LoginRateLimit  int
	LoginRatePeriod time.Duration
}
