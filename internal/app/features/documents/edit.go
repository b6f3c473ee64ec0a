// internal/app/features/documents/edit.go
package documents

import (
	"context"
	"errors"
	"net/http"

	documentstore "github.com/dalemusser/mutuhub/internal/app/store/documents"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
)

// HandleUpdate handles PUT /documents/{id}. The storage key is kept.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Document")
		return
	}

	var in documentInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, res, err := h.documentFromInput(ctx, in)
	if err != nil {
		respond.ServerError(w, r, h.Log, "update document: reference lookup failed", err)
		return
	}
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	err = h.store().Update(ctx, id, d)
	if errors.Is(err, documentstore.ErrNotFound) {
		respond.NotFound(w, "Document")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "update document failed", err)
		return
	}

	updated, err := h.store().GetByID(ctx, id)
	if err != nil {
		respond.ServerError(w, r, h.Log, "reload document failed", err)
		return
	}
	respond.Flash(w, "Document updated.", updated)
}
