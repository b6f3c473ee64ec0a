// internal/app/features/units/list.go
package units

import (
	"context"
	"errors"
	"net/http"
	"strings"

	unitstore "github.com/dalemusser/mutuhub/internal/app/store/units"
	"github.com/dalemusser/mutuhub/internal/app/system/paging"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/search"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList handles GET /units.
//
// Query: q (nama prefix), status, tipe, parent_id ("root" for top-level
// units), page, limit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	qs := r.URL.Query()
	filter := search.Filter(r, "nama_ci")
	if tipe := strings.TrimSpace(qs.Get("tipe")); tipe != "" {
		filter["tipe"] = strings.ToLower(tipe)
	}
	switch p := strings.TrimSpace(qs.Get("parent_id")); p {
	case "":
	case "root":
		filter["parent_id"] = bson.M{"$exists": false}
	default:
		oid, err := primitive.ObjectIDFromHex(p)
		if err != nil {
			respond.ValidationField(w, "parent_id", "Parent unit must be a valid ID.")
			return
		}
		filter["parent_id"] = oid
	}

	pg := paging.Parse(r)
	total, err := h.store().Count(ctx, filter)
	if err != nil {
		respond.ServerError(w, r, h.Log, "count units failed", err)
		return
	}
	rows, err := h.store().Find(ctx, filter, pg.FindOptions(bson.D{{Key: "nama_ci", Value: 1}}))
	if err != nil {
		respond.ServerError(w, r, h.Log, "list units failed", err)
		return
	}
	respond.List(w, rows, paging.NewMeta(pg, total))
}

// ServeView handles GET /units/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Unit")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.store().GetByID(ctx, id)
	if errors.Is(err, unitstore.ErrNotFound) {
		respond.NotFound(w, "Unit")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load unit failed", err)
		return
	}
	respond.OK(w, u)
}

// ServeChildren handles GET /units/{id}/children: direct sub-units by name.
func (h *Handler) ServeChildren(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Unit")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.store().GetByID(ctx, id); err != nil {
		if errors.Is(err, unitstore.ErrNotFound) {
			respond.NotFound(w, "Unit")
			return
		}
		respond.ServerError(w, r, h.Log, "load unit failed", err)
		return
	}
	children, err := h.store().Children(ctx, id)
	if err != nil {
		respond.ServerError(w, r, h.Log, "list child units failed", err)
		return
	}
	respond.OK(w, children)
}
