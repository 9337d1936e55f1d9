// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/dalemusser/pollhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/pollhub/internal/app/features/login"
	pollsfeature "github.com/dalemusser/pollhub/internal/app/features/polls"
	registerfeature "github.com/dalemusser/pollhub/internal/app/features/register"
	"github.com/dalemusser/pollhub/internal/app/system/apierr"
	"github.com/dalemusser/pollhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. PollHub builds the token resolver,
// applies the global identity-loading middleware, and mounts the
// feature routers for auth, polls, and health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.PollHubMongoDatabase

	// Token resolver: verifies bearer tokens and re-fetches the user so
	// deleted accounts lose access as soon as their document is gone.
	tokens := auth.NewTokenAuth(db, appCfg.TokenSecret, appCfg.TokenTTL, logger)

	// Error logger for handlers: full details to the log, generic
	// message to the client.
	errLog := apierr.NewLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the bearer identity into context if
	// a valid token is presented. Invalid or absent tokens leave the
	// request anonymous; protected routes layer RequireIdentity on top.
	r.Use(auth.LoadIdentity(tokens, logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.PollHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	registerHandler := registerfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/auth/register", registerfeature.Routes(registerHandler))

	loginHandler := loginfeature.NewHandler(db, tokens, errLog, logger)
	r.Mount("/api/auth/login", loginfeature.Routes(loginHandler))

	pollsHandler := pollsfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/polls", pollsfeature.Routes(pollsHandler))

	return r, nil
}
