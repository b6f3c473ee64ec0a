// Package logout ends the caller's session.
package logout

import (
	"net/http"

	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"go.uber.org/zap"
)

type Handler struct {
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

func NewHandler(sessions *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sessions, Log: logger}
}

// HandleLogout handles POST /logout. It answers 200 whether or not a
// session was present; an undecodable cookie is replaced by the expired one.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	fields := []zap.Field{}
	if u, ok := auth.CurrentUser(r); ok {
		fields = append(fields, zap.String("user_id", u.ID), zap.String("login_id", u.LoginID))
	}

	if err := h.Sessions.Logout(w, r); err != nil {
		h.Log.Error("logout: expire session cookie", append(fields, zap.Error(err))...)
	} else if len(fields) > 0 {
		h.Log.Info("user signed out", fields...)
	}
	respond.Flash(w, "Signed out.", nil)
}
