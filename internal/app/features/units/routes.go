// internal/app/features/units/routes.go
package units

import (
	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Unit routes under the base path (typically "/units").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireCan(authz.ViewUnit))
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)
		pr.Get("/{id}/children", h.ServeChildren)
	})

	r.With(sm.RequireCan(authz.CreateUnit)).Post("/", h.HandleCreate)
	r.With(sm.RequireCan(authz.UpdateUnit)).Put("/{id}", h.HandleUpdate)
	r.With(sm.RequireCan(authz.DeleteUnit)).Delete("/{id}", h.HandleDelete)

	return r
}
