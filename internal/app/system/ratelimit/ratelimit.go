// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

// MsgTooManyAttempts is returned once a client exhausts its login budget.
const MsgTooManyAttempts = "Too many login attempts. Please try again later."

// Defaults: 10 attempts per client address per minute, 5 per email per 5 minutes.
const (
	DefaultIPLimit       = 10
	DefaultIPPeriod      = time.Minute
	DefaultEmailLimit    = 5
	DefaultEmailPeriod   = 5 * time.Minute
	emailKeyPrefix       = "email:"
	defaultLimiterPrefix = "dealerhub-login"
)

// LoginLimiter throttles login attempts by client address and by email.
// Counters live in process memory.
type LoginLimiter struct {
	byIP    *limiter.Limiter
	byEmail *limiter.Limiter
	log     *zap.Logger
}

// Config sets the two budgets. Zero values fall back to the defaults.
type Config struct {
	IPLimit     int
	IPPeriod    time.Duration
	EmailLimit  int
	EmailPeriod time.Duration
}

// NewLoginLimiter builds a limiter with cfg's budgets.
func NewLoginLimiter(cfg Config, logger *zap.Logger) *LoginLimiter {
	if cfg.IPLimit <= 0 {
		cfg.IPLimit = DefaultIPLimit
	}
	if cfg.IPPeriod <= 0 {
		cfg.IPPeriod = DefaultIPPeriod
	}
	if cfg.EmailLimit <= 0 {
		cfg.EmailLimit = DefaultEmailLimit
	}
	if cfg.EmailPeriod <= 0 {
		cfg.EmailPeriod = DefaultEmailPeriod
	}

	store := func(suffix string) limiter.Store {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          defaultLimiterPrefix + "-" + suffix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}

	return &LoginLimiter{
		// Keyed on RemoteAddr only; X-Forwarded-For is client-controlled.
		byIP: limiter.New(store("ip"),
			limiter.Rate{Period: cfg.IPPeriod, Limit: int64(cfg.IPLimit)}),
		byEmail: limiter.New(store("email"),
			limiter.Rate{Period: cfg.EmailPeriod, Limit: int64(cfg.EmailLimit)}),
		log: logger,
	}
}

// Middleware rejects requests over the per-address budget with 429 and a
// JSON message. Store errors let the request through.
func (ll *LoginLimiter) Middleware(next http.Handler) http.Handler {
	mw := stdlib.NewMiddleware(ll.byIP,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			ll.log.Warn("login rate limit reached", zap.String("ip", ll.byIP.GetIPKey(r)))
			writeTooMany(w)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			ll.log.Error("login rate limiter failed", zap.Error(err))
			next.ServeHTTP(w, r)
		}),
	)
	return mw.Handler(next)
}

// Check consumes one attempt for r's address and, when given, for email.
// It reports whether the attempt may proceed.
func (ll *LoginLimiter) Check(ctx context.Context, r *http.Request, email string) bool {
	if !ll.take(ctx, ll.byIP, ll.byIP.GetIPKey(r)) {
		return false
	}
	if key := emailKey(email); key != "" {
		return ll.take(ctx, ll.byEmail, key)
	}
	return true
}

// ResetEmail forgets the attempts recorded for email after a successful login.
func (ll *LoginLimiter) ResetEmail(ctx context.Context, email string) {
	key := emailKey(email)
	if key == "" {
		return
	}
	if _, err := ll.byEmail.Reset(ctx, key); err != nil {
		ll.log.Warn("login rate limit reset failed", zap.Error(err))
	}
}

func (ll *LoginLimiter) take(ctx context.Context, l *limiter.Limiter, key string) bool {
	lc, err := l.Get(ctx, key)
	if err != nil {
		ll.log.Error("login rate limiter failed", zap.Error(err))
		return true
	}
	return !lc.Reached
}

func emailKey(email string) string {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return ""
	}
	return emailKeyPrefix + e
}

func writeTooMany(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": MsgTooManyAttempts})
}
