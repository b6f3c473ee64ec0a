// internal/app/features/standards/routes.go
package standards

import (
	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts standar mutu routes with their nested indikator and
// pertanyaan (typically at "/standards").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireCan(authz.ViewStandarMutu))
		pr.Get("/", h.ServeList)
		pr.Get("/{standarID}", h.ServeView)
		pr.Get("/{standarID}/indikator", h.ServeIndikator)
		pr.Get("/{standarID}/indikator/{indikatorID}/pertanyaan", h.ServePertanyaan)
	})

	r.With(sm.RequireCan(authz.CreateStandarMutu)).Post("/", h.HandleCreate)
	r.With(sm.RequireCan(authz.DeleteStandarMutu)).Delete("/{standarID}", h.HandleDelete)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireCan(authz.UpdateStandarMutu))
		pr.Put("/{standarID}", h.HandleUpdate)

		pr.Post("/{standarID}/indikator", h.HandleCreateIndikator)
		pr.Post("/{standarID}/indikator/reorder", h.HandleReorderIndikator)
		pr.Put("/{standarID}/indikator/{indikatorID}", h.HandleUpdateIndikator)
		pr.Delete("/{standarID}/indikator/{indikatorID}", h.HandleDeleteIndikator)

		pr.Post("/{standarID}/indikator/{indikatorID}/pertanyaan", h.HandleCreatePertanyaan)
		pr.Post("/{standarID}/indikator/{indikatorID}/pertanyaan/reorder", h.HandleReorderPertanyaan)
		pr.Put("/{standarID}/indikator/{indikatorID}/pertanyaan/{pertanyaanID}", h.HandleUpdatePertanyaan)
		pr.Delete("/{standarID}/indikator/{indikatorID}/pertanyaan/{pertanyaanID}", h.HandleDeletePertanyaan)
	})

	return r
}
