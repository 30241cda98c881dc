// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/dealerhub/internal/app/resources"
	"github.com/dalemusser/dealerhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup registers shared templates and applies timeout overrides before
// the handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	n := timeouts.ConfigureFromEnv()
	cur := timeouts.Current()
	logger.Info("timeouts configured",
		zap.Int("overrides", n),
		zap.Duration("ping", cur.Ping),
		zap.Duration("login", cur.Login),
		zap.Duration("upstream", cur.Upstream),
		zap.Duration("upload", cur.Upload))
	return nil
}
