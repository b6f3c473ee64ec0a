// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"sync"

	userstore "github.com/dalemusser/mutuhub/internal/app/store/users"
	"github.com/dalemusser/mutuhub/internal/app/system/ratelimit"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	bgMu     sync.Mutex
	bgCancel context.CancelFunc

	// loginLimiter is shared by the login feature and swept in the
	// background until Shutdown.
	loginLimiter *ratelimit.LoginLimiter
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	if appCfg.SuperAdminLoginID != "" {
		if err := ensureSuperAdmin(ctx, deps, appCfg.SuperAdminLoginID, appCfg.SuperAdminPassword, logger); err != nil {
			logger.Error("superadmin bootstrap failed", zap.Error(err))
			return err
		}
	}

	bgMu.Lock()
	defer bgMu.Unlock()
	loginLimiter = ratelimit.NewLoginLimiter(appCfg.LoginRateLimit)
	bgCtx, cancel := context.WithCancel(context.Background())
	bgCancel = cancel
	go loginLimiter.Run(bgCtx)

	return nil
}

func stopBackground() {
	bgMu.Lock()
	defer bgMu.Unlock()
	if bgCancel != nil {
		bgCancel()
		bgCancel = nil
	}
}

// ensureSuperAdmin creates loginID as a superadmin or promotes the existing
// user. A new account needs a password; an existing one keeps its password
// unless one is given.
func ensureSuperAdmin(ctx context.Context, deps DBDeps, loginID, password string, logger *zap.Logger) error {
	store := userstore.New(deps.MongoDatabase)

	_, err := store.GetByLoginID(ctx, loginID)
	exists := err == nil
	if err != nil && !errors.Is(err, userstore.ErrNotFound) {
		return err
	}
	if !exists && password == "" {
		return errors.New("superadmin_password is required to create the superadmin account")
	}

	var hash string
	if password != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hash = string(b)
	}

	created, err := store.EnsureSuperAdmin(ctx, loginID, "Super Admin", hash)
	if err != nil {
		return err
	}
	if created {
		logger.Info("created superadmin", zap.String("login_id", loginID))
	} else {
		logger.Info("ensured superadmin role", zap.String("login_id", loginID))
	}
	return nil
}
