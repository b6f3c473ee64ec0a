// internal/app/features/documents/routes.go
package documents

import (
	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all document routes under the base path (typically "/documents").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireCan(authz.ViewDocument))
		r.Get("/", h.ServeList)
		r.Get("/{id}", h.ServeView)
	})
	r.With(sm.RequireCan(authz.CreateDocument)).Post("/", h.HandleCreate)
	r.With(sm.RequireCan(authz.UpdateDocument)).Put("/{id}", h.HandleUpdate)
	r.With(sm.RequireCan(authz.DeleteDocument)).Delete("/{id}", h.HandleDelete)

	return r
}
