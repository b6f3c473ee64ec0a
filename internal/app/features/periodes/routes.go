// internal/app/features/periodes/routes.go
package periodes

import (
	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Periode routes under the base path (typically "/periodes").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireCan(authz.ViewPeriode))
		pr.Get("/", h.ServeList)
		pr.Get("/active", h.ServeActive)
		pr.Get("/{id}", h.ServeView)
	})

	r.With(sm.RequireCan(authz.CreatePeriode)).Post("/", h.HandleCreate)
	r.With(sm.RequireCan(authz.UpdatePeriode)).Put("/{id}", h.HandleUpdate)
	r.With(sm.RequireCan(authz.DeletePeriode)).Delete("/{id}", h.HandleDelete)
	r.With(sm.RequireCan(authz.ActivatePeriode)).Post("/{id}/activate", h.HandleActivate)

	return r
}
