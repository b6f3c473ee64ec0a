// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/mutuhub/internal/app/store/users"
	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/inputval"
	"github.com/dalemusser/mutuhub/internal/app/system/ratelimit"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler signs users in with a login id and password.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
}

// NewHandler constructs a login Handler. A nil limiter disables throttling.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		SessionMgr: sessionMgr,
		Limiter:    limiter,
	}
}

type loginInput struct {
	LoginID  string `json:"login_id" validate:"required,max=100" label:"Login ID"`
	Password string `json:"password" validate:"required,max=200" label:"Password"`
}

type userView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LoginID string `json:"login_id"`
	Role    string `json:"role"`
}

const badCredentials = "Login ID or password is incorrect."

// HandleLogin handles POST /login.
//
// Unknown login ids, disabled accounts and wrong passwords all answer with
// the same 422 so callers cannot tell which one failed.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	in.LoginID = strings.TrimSpace(in.LoginID)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, in.LoginID); !ok {
			h.Log.Warn("login rate limited", zap.String("login_id", in.LoginID), zap.String("ip", ratelimit.ClientIP(r)))
			respond.JSON(w, http.StatusTooManyRequests, respond.Body{Message: reason})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByLoginID(ctx, in.LoginID)
	if errors.Is(err, userstore.ErrNotFound) {
		h.Log.Debug("login: unknown login id", zap.String("login_id", in.LoginID))
		respond.ValidationField(w, "login_id", badCredentials)
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "login: user lookup failed", err)
		return
	}
	if u.Status == userstore.StatusDisabled || u.PasswordHash == "" {
		h.Log.Debug("login: account cannot sign in", zap.String("login_id", in.LoginID), zap.String("status", u.Status))
		respond.ValidationField(w, "login_id", badCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		h.Log.Debug("login: password mismatch", zap.String("login_id", in.LoginID))
		respond.ValidationField(w, "login_id", badCredentials)
		return
	}

	if err := h.SessionMgr.Login(w, r, u.ID.Hex()); err != nil {
		respond.ServerError(w, r, h.Log, "login: save session", err)
		return
	}
	if h.Limiter != nil {
		h.Limiter.Succeeded(in.LoginID)
	}

	h.Log.Info("user signed in", zap.String("user_id", u.ID.Hex()), zap.String("role", u.Role))
	respond.Flash(w, "Signed in.", userView{
		ID:      u.ID.Hex(),
		Name:    u.FullName,
		LoginID: u.LoginID,
		Role:    u.Role,
	})
}
