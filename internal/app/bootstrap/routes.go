// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authgooglefeature "github.com/advocateworks/lexhub/internal/app/features/authgoogle"
	casesfeature "github.com/advocateworks/lexhub/internal/app/features/cases"
	clientsfeature "github.com/advocateworks/lexhub/internal/app/features/clients"
	healthfeature "github.com/advocateworks/lexhub/internal/app/features/health"
	loginfeature "github.com/advocateworks/lexhub/internal/app/features/login"
	profilefeature "github.com/advocateworks/lexhub/internal/app/features/profile"
	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. LexHub applies the session middleware
// globally and mounts one feature router per area: health, password
// login, Google OAuth, profile, clients, and cases.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler))

	googleHandler := authgooglefeature.NewHandler(deps.MongoDatabase, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	if googleHandler.IsConfigured() {
		r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
	} else {
		logger.Info("google oauth not configured; /auth/google routes disabled")
	}

	// Signed-in user's own account
	profileHandler := profilefeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/me", profilefeature.Routes(profileHandler, sessionMgr))

	// Core domain resources
	clientsHandler := clientsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/clients", clientsfeature.Routes(clientsHandler, sessionMgr))

	casesHandler := casesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/cases", casesfeature.Routes(casesHandler, sessionMgr))

	return r, nil
}
