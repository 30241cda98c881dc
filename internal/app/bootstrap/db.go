// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/dealerhub/internal/app/system/timeouts"
	"github.com/dalemusser/dealerhub/internal/app/system/upstream"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the upstream API client. Nothing is dialed here; the
// client connects lazily on first use.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	client := upstream.New(appCfg.UpstreamBaseURL, appCfg.UpstreamTimeout, logger)
	logger.Info("upstream client ready",
		zap.String("base_url", client.BaseURL()),
		zap.Duration("timeout", appCfg.UpstreamTimeout))
	return DBDeps{Upstream: client}, nil
}

// EnsureSchema has no schema to manage; it probes the upstream once so a
// misconfigured base URL shows up in the startup log. An unreachable
// upstream does not stop the server.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()

	if err := deps.Upstream.Ping(pingCtx); err != nil {
		logger.Warn("upstream not reachable at startup", zap.Error(err))
		return nil
	}
	logger.Info("upstream reachable", zap.String("base_url", deps.Upstream.BaseURL()))
	return nil
}
