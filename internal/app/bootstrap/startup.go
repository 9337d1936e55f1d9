// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// PollHub has no templates or caches to warm, so this only records that
// the app came up and with which token lifetime.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("pollhub starting",
		zap.String("env", coreCfg.Env),
		zap.Duration("token_ttl", appCfg.TokenTTL))
	return nil
}
