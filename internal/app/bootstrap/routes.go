// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	apiauthfeature "github.com/dalemusser/dealerhub/internal/app/features/apiauth"
	brokernamefeature "github.com/dalemusser/dealerhub/internal/app/features/brokername"
	businessentryfeature "github.com/dalemusser/dealerhub/internal/app/features/businessentry"
	dashboardfeature "github.com/dalemusser/dealerhub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/dealerhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/dealerhub/internal/app/features/health"
	homefeature "github.com/dalemusser/dealerhub/internal/app/features/home"
	loginfeature "github.com/dalemusser/dealerhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/dealerhub/internal/app/features/logout"
	uploadsfeature "github.com/dalemusser/dealerhub/internal/app/features/uploads"
	userdirectoryfeature "github.com/dalemusser/dealerhub/internal/app/features/userdirectory"
	"github.com/dalemusser/dealerhub/internal/app/system/auth"
	"github.com/dalemusser/dealerhub/internal/app/system/authz"
	"github.com/dalemusser/dealerhub/internal/app/system/proxy"
	"github.com/dalemusser/dealerhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, the upstream client, and any
// Startup hooks are ready. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: the upstream API client bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// DealerHub serves two surfaces from one router: the server-rendered pages
// (home, login, logout, role dashboards) and the /api proxy that relays
// browser calls to the upstream API with the session's token attached.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionTTL, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := proxy.NewMetrics(reg)

	limiter := ratelimit.NewLoginLimiter(ratelimit.Config{
		IPLimit:  appCfg.LoginRateLimit,
		IPPeriod: appCfg.LoginRatePeriod,
	}, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global session middleware: loads the Session into context when the
	// cookie decodes. Access decisions happen per area below.
	r.Use(sessionMgr.LoadSession)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Upstream, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(sessionMgr, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.Upstream, sessionMgr, limiter, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.NotFound(errorsHandler.NotFound)

	// Role-based dashboards behind the path guard
	guard := authz.NewGuard(sessionMgr, authz.DefaultPathRoles(), logger)
	dashboardHandler := dashboardfeature.NewHandler(deps.Upstream, sessionMgr, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, guard.Middleware))

	// Upstream API proxy
	fwd := proxy.NewForwarder(deps.Upstream, metrics, logger)
	r.Route("/api", func(api chi.Router) {
		api.Mount("/login", apiauthfeature.LoginRoutes(fwd, limiter.Middleware))
		api.Mount("/register-associate", apiauthfeature.RegisterRoutes(fwd))
		api.Mount("/businessentry", businessentryfeature.Routes(fwd))
		api.Mount("/brokername", brokernamefeature.Routes(fwd))
		api.Mount("/uploads", uploadsfeature.Routes(fwd))
		api.Mount("/users", userdirectoryfeature.Routes(fwd))
		api.Mount("/v1/profile", userdirectoryfeature.ProfileRoutes(fwd))
	})

	return r, nil
}
