// internal/app/features/dosen/routes.go
package dosen

import (
	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Dosen routes under the base path (typically "/dosen").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.With(sm.RequireCan(authz.ViewDosen)).Get("/", h.ServeList)
	r.With(sm.RequireCan(authz.ViewDosen)).Get("/{id}", h.ServeView)
	r.With(sm.RequireCan(authz.CreateDosen)).Post("/", h.HandleCreate)
	r.With(sm.RequireCan(authz.UpdateDosen)).Put("/{id}", h.HandleUpdate)
	r.With(sm.RequireCan(authz.DeleteDosen)).Delete("/{id}", h.HandleDelete)

	return r
}
