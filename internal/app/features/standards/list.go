// internal/app/features/standards/list.go
package standards

import (
	"context"
	"net/http"

	"github.com/dalemusser/mutuhub/internal/app/system/paging"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/search"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeList handles GET /standards.
//
// Query: q (nama prefix), status, page, limit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := search.Filter(r, "nama_ci")
	pg := paging.Parse(r)
	total, err := h.store().Count(ctx, filter)
	if err != nil {
		respond.ServerError(w, r, h.Log, "count standar mutu failed", err)
		return
	}
	rows, err := h.store().Find(ctx, filter, pg.FindOptions(bson.D{{Key: "kode_ci", Value: 1}}))
	if err != nil {
		respond.ServerError(w, r, h.Log, "list standar mutu failed", err)
		return
	}
	respond.List(w, rows, paging.NewMeta(pg, total))
}

// ServeView handles GET /standards/{standarID}. The body carries the
// standar with its indikator in display order.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sm, ok := h.loadStandar(ctx, w, r)
	if !ok {
		return
	}
	inds, err := h.store().ListIndikator(ctx, sm.ID)
	if err != nil {
		respond.ServerError(w, r, h.Log, "list indikator failed", err)
		return
	}
	respond.OK(w, standarView{StandarMutu: sm, Indikator: inds})
}
