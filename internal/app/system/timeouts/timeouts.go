// Package timeouts holds the deadlines applied to upstream API calls.
//
// Every handler that talks to the upstream API wraps its request context
// with one of these values:
//   - Ping: health checks against the upstream base URL
//   - Login: the login exchange (users are waiting on a form submit)
//   - Upstream: proxied CRUD calls and dashboard data fetches
//   - Upload: multipart uploads relayed to the upstream
//
// Values can be overridden once at startup with Configure or
// ConfigureFromEnv. Handlers read them through the getters.
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing     = 2 * time.Second
	DefaultLogin    = 10 * time.Second
	DefaultUpstream = 15 * time.Second
	DefaultUpload   = 60 * time.Second
)

var mu sync.RWMutex

var (
	ping     = DefaultPing
	login    = DefaultLogin
	upstream = DefaultUpstream
	upload   = DefaultUpload
)

// Ping is the deadline for upstream reachability checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Login is the deadline for the login exchange.
func Login() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return login
}

// Upstream is the deadline for a proxied call or a dashboard data fetch.
func Upstream() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return upstream
}

// Upload is the deadline for relaying a multipart upload.
func Upload() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return upload
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping     time.Duration
	Login    time.Duration
	Upstream time.Duration
	Upload   time.Duration
}

// Configure sets custom timeout values. Zero values keep the current value.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Login > 0 {
		login = cfg.Login
	}
	if cfg.Upstream > 0 {
		upstream = cfg.Upstream
	}
	if cfg.Upload > 0 {
		upload = cfg.Upload
	}
}

// Reset restores all timeouts to their default values. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	login = DefaultLogin
	upstream = DefaultUpstream
	upload = DefaultUpload
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_LOGIN, TIMEOUT_UPSTREAM and
// TIMEOUT_UPLOAD (Go duration strings). Unset or invalid values are skipped.
// Returns the number of timeouts configured.
func ConfigureFromEnv() int {
	vars := []struct {
		env string
		dst *time.Duration
	}{
		{"TIMEOUT_PING", &ping},
		{"TIMEOUT_LOGIN", &login},
		{"TIMEOUT_UPSTREAM", &upstream},
		{"TIMEOUT_UPLOAD", &upload},
	}

	mu.Lock()
	defer mu.Unlock()
	configured := 0
	for _, v := range vars {
		raw := os.Getenv(v.env)
		if raw == "" {
			continue
		}
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			*v.dst = d
			configured++
		}
	}
	return configured
}

// Current returns the current timeout configuration, for startup logging.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		Ping:     ping,
		Login:    login,
		Upstream: upstream,
		Upload:   upload,
	}
}

// WithTimeout derives a context bounded by timeout whose cancel func logs
// a warning when the deadline was what ended it.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
