// internal/app/features/documents/list.go
package documents

import (
	"context"
	"errors"
	"net/http"
	"strings"

	documentstore "github.com/dalemusser/mutuhub/internal/app/store/documents"
	"github.com/dalemusser/mutuhub/internal/app/system/paging"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/search"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList handles GET /documents.
//
// Query: q (judul prefix), kategori, unit_id, periode_id, page, limit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	filter := bson.M{}
	if p := search.Prefix(q.Get("q")); p != nil {
		filter["judul_ci"] = p
	}
	if k := strings.ToLower(strings.TrimSpace(q.Get("kategori"))); k != "" {
		if !isKategori(k) {
			respond.ValidationField(w, "kategori", "Kategori must be one of: "+strings.Join(models.DocumentKategori, ", ")+".")
			return
		}
		filter["kategori"] = k
	}
	for _, field := range []string{"unit_id", "periode_id"} {
		v := strings.TrimSpace(q.Get(field))
		if v == "" {
			continue
		}
		oid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			respond.ValidationField(w, field, "Must be a valid ID.")
			return
		}
		filter[field] = oid
	}

	pg := paging.Parse(r)
	total, err := h.store().Count(ctx, filter)
	if err != nil {
		respond.ServerError(w, r, h.Log, "count documents failed", err)
		return
	}
	rows, err := h.store().Find(ctx, filter, pg.FindOptions(bson.D{{Key: "judul_ci", Value: 1}}))
	if err != nil {
		respond.ServerError(w, r, h.Log, "list documents failed", err)
		return
	}
	respond.List(w, rows, paging.NewMeta(pg, total))
}

// ServeView handles GET /documents/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Document")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.store().GetByID(ctx, id)
	if errors.Is(err, documentstore.ErrNotFound) {
		respond.NotFound(w, "Document")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load document failed", err)
		return
	}
	respond.OK(w, d)
}

func isKategori(k string) bool {
	for _, v := range models.DocumentKategori {
		if v == k {
			return true
		}
	}
	return false
}
