// internal/app/features/userinfo/handler.go
package userinfo

import (
	"net/http"

	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
)

// Handler serves user information for authenticated sessions.
type Handler struct{}

// NewHandler creates a new userinfo handler.
func NewHandler() *Handler {
	return &Handler{}
}

type meView struct {
	IsAuthenticated bool     `json:"is_authenticated"`
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name,omitempty"`
	LoginID         string   `json:"login_id,omitempty"`
	Role            string   `json:"role,omitempty"`
	Permissions     []string `json:"permissions,omitempty"`
}

// ServeMe handles GET /me: the current user's identity and the resolved
// permission set, so clients can hide actions the server would refuse.
// Visitors get is_authenticated=false rather than a 401.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.OK(w, meView{})
		return
	}

	perms := user.Caps.Permissions()
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, string(p))
	}
	respond.OK(w, meView{
		IsAuthenticated: true,
		ID:              user.ID,
		Name:            user.Name,
		LoginID:         user.LoginID,
		Role:            user.Role,
		Permissions:     names,
	})
}
