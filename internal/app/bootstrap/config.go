// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/dealerhub/internal/app/system/auth"
	"github.com/dalemusser/dealerhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// minSessionKeyLen is enforced in production.
const minSessionKeyLen = 32

// appConfigKeys defines the configuration keys for DealerHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: upstream_base_url, session_name, etc.
//   - Environment variables: DEALERHUB_UPSTREAM_BASE_URL, DEALERHUB_SESSION_NAME, etc.
//   - Command-line flags: --upstream_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "upstream_base_url", Default: "http://localhost:5000/api", Desc: "Base URL of the upstream REST API"},
	{Name: "upstream_timeout", Default: "30s", Desc: "Deadline for upstream calls that carry no per-operation timeout"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: auth.DefaultSessionName, Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_ttl", Default: "8h", Desc: "Session lifetime when the upstream token carries no expiry"},

	{Name: "login_rate_limit", Default: ratelimit.DefaultIPLimit, Desc: "Login attempts allowed per client address per period"},
	{Name: "login_rate_period", Default: "1m", Desc: "Window for login_rate_limit (e.g., 1m, 15m)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, DEALERHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "DEALERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		UpstreamBaseURL: appValues.String("upstream_base_url"),
		UpstreamTimeout: appValues.Duration("upstream_timeout", 30*time.Second),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionTTL:    appValues.Duration("session_ttl", 8*time.Hour),

		LoginRateLimit:  appValues.Int("login_rate_limit"),
		LoginRatePeriod: appValues.Duration("login_rate_period", time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The upstream URL must be an absolute http(s) URL; production refuses
// short session keys.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if !urlutil.IsValidAbsHTTPURL(appCfg.UpstreamBaseURL) {
		logger.Error("invalid upstream base URL", zap.String("upstream_base_url", appCfg.UpstreamBaseURL))
		return fmt.Errorf("upstream_base_url must be an absolute http(s) URL, got %q", appCfg.UpstreamBaseURL)
	}
	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key is required")
	}
	if coreCfg != nil && coreCfg.Env == "prod" && len(appCfg.SessionKey) < minSessionKeyLen {
		return fmt.Errorf("session_key must be at least %d characters in production", minSessionKeyLen)
	}
	if appCfg.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", appCfg.SessionTTL)
	}
	if appCfg.LoginRateLimit < 0 {
		return fmt.Errorf("login_rate_limit must not be negative, got %d", appCfg.LoginRateLimit)
	}
	return nil
}
