// internal/app/bootstrap/routes.go
package bootstrap

import (
	"encoding/hex"
	"net/http"

	documentsfeature "github.com/dalemusser/mutuhub/internal/app/features/documents"
	dosenfeature "github.com/dalemusser/mutuhub/internal/app/features/dosen"
	healthfeature "github.com/dalemusser/mutuhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/mutuhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/mutuhub/internal/app/features/logout"
	periodesfeature "github.com/dalemusser/mutuhub/internal/app/features/periodes"
	standardsfeature "github.com/dalemusser/mutuhub/internal/app/features/standards"
	surveysfeature "github.com/dalemusser/mutuhub/internal/app/features/surveys"
	unitsfeature "github.com/dalemusser/mutuhub/internal/app/features/units"
	userinfofeature "github.com/dalemusser/mutuhub/internal/app/features/userinfo"
	userstore "github.com/dalemusser/mutuhub/internal/app/store/users"
	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/metrics"
	"github.com/dalemusser/mutuhub/internal/app/system/ratelimit"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Every feature speaks JSON; the session
// user is loaded once per request and each feature router applies its own
// permission checks.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	sessionKey := appCfg.SessionKey
	if sessionKey == "" && !secure {
		// Sessions will not survive a restart with a generated key.
		sessionKey = hex.EncodeToString(securecookie.GenerateRandomKey(32))
		logger.Warn("no session_key configured; using a generated development key")
	}
	sessionMgr, err := auth.NewSessionManager(sessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request so role
	// changes and disabled accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	limiter := loginLimiter
	if limiter == nil {
		limiter = ratelimit.NewLoginLimiter(appCfg.LoginRateLimit)
	}

	db := deps.MongoDatabase

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if appCfg.MetricsEnabled {
		r.Use(metrics.Instrument)
		r.Handle("/metrics", metrics.Handler())
	}
	r.Use(sessionMgr.LoadSessionUser)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.NotFound(w, "Route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusMethodNotAllowed, respond.Body{Message: "Method not allowed."})
	})

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, sessionMgr, limiter, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	r.Mount("/me", userinfofeature.Routes(userinfofeature.NewHandler()))

	// Surveys, their questions and options
	surveysHandler := surveysfeature.NewHandler(db, logger)
	r.Mount("/surveys", surveysfeature.Routes(surveysHandler, sessionMgr))
	r.Mount("/survey-questions", surveysfeature.QuestionRoutes(surveysHandler, sessionMgr))
	r.Mount("/survey-options", surveysfeature.OptionRoutes(surveysHandler, sessionMgr))

	// Organisation
	unitsHandler := unitsfeature.NewHandler(db, appCfg.UnitHierarchyStrict, logger)
	r.Mount("/units", unitsfeature.Routes(unitsHandler, sessionMgr))

	periodesHandler := periodesfeature.NewHandler(db, logger)
	r.Mount("/periodes", periodesfeature.Routes(periodesHandler, sessionMgr))

	dosenHandler := dosenfeature.NewHandler(db, logger)
	r.Mount("/dosen", dosenfeature.Routes(dosenHandler, sessionMgr))

	// Quality documents and standards
	documentsHandler := documentsfeature.NewHandler(db, logger)
	r.Mount("/documents", documentsfeature.Routes(documentsHandler, sessionMgr))

	standardsHandler := standardsfeature.NewHandler(db, logger)
	r.Mount("/standards", standardsfeature.Routes(standardsHandler, sessionMgr))

	logger.Info("routes mounted",
		zap.Bool("unit_hierarchy_strict", appCfg.UnitHierarchyStrict),
		zap.Bool("metrics_enabled", appCfg.MetricsEnabled))

	return r, nil
}
