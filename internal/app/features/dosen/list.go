// internal/app/features/dosen/list.go
package dosen

import (
	"context"
	"errors"
	"net/http"
	"strings"

	dosenstore "github.com/dalemusser/mutuhub/internal/app/store/dosen"
	"github.com/dalemusser/mutuhub/internal/app/system/paging"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/search"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList handles GET /dosen.
//
// Query: q (nama prefix), status, unit_id, page, limit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := search.Filter(r, "nama_ci")
	if u := strings.TrimSpace(r.URL.Query().Get("unit_id")); u != "" {
		oid, err := primitive.ObjectIDFromHex(u)
		if err != nil {
			respond.ValidationField(w, "unit_id", "Unit must be a valid ID.")
			return
		}
		filter["unit_id"] = oid
	}

	pg := paging.Parse(r)
	total, err := h.store().Count(ctx, filter)
	if err != nil {
		respond.ServerError(w, r, h.Log, "count dosen failed", err)
		return
	}
	rows, err := h.store().Find(ctx, filter, pg.FindOptions(bson.D{{Key: "nama_ci", Value: 1}}))
	if err != nil {
		respond.ServerError(w, r, h.Log, "list dosen failed", err)
		return
	}
	respond.List(w, rows, paging.NewMeta(pg, total))
}

// ServeView handles GET /dosen/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Dosen")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.store().GetByID(ctx, id)
	if errors.Is(err, dosenstore.ErrNotFound) {
		respond.NotFound(w, "Dosen")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load dosen failed", err)
		return
	}
	respond.OK(w, d)
}
