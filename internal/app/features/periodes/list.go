// internal/app/features/periodes/list.go
package periodes

import (
	"context"
	"errors"
	"net/http"

	periodestore "github.com/dalemusser/mutuhub/internal/app/store/periodes"
	"github.com/dalemusser/mutuhub/internal/app/system/paging"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/search"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeList handles GET /periodes (newest first).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := search.Filter(r, "kode_ci")
	pg := paging.Parse(r)
	total, err := h.store().Count(ctx, filter)
	if err != nil {
		respond.ServerError(w, r, h.Log, "count periodes failed", err)
		return
	}
	rows, err := h.store().Find(ctx, filter, pg.FindOptions(bson.D{{Key: "mulai", Value: -1}}))
	if err != nil {
		respond.ServerError(w, r, h.Log, "list periodes failed", err)
		return
	}
	respond.List(w, rows, paging.NewMeta(pg, total))
}

// ServeActive handles GET /periodes/active.
func (h *Handler) ServeActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.store().Active(ctx)
	if errors.Is(err, periodestore.ErrNotFound) {
		respond.NotFound(w, "Active periode")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load active periode failed", err)
		return
	}
	respond.OK(w, p)
}

// ServeView handles GET /periodes/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Periode")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.store().GetByID(ctx, id)
	if errors.Is(err, periodestore.ErrNotFound) {
		respond.NotFound(w, "Periode")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load periode failed", err)
		return
	}
	respond.OK(w, p)
}
