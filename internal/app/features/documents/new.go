// internal/app/features/documents/new.go
package documents

import (
	"context"
	"net/http"

	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleCreate handles POST /documents. The response carries the generated
// storage_key the client uploads the file under.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in documentInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, res, err := h.documentFromInput(ctx, in)
	if err != nil {
		respond.ServerError(w, r, h.Log, "create document: reference lookup failed", err)
		return
	}
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	d, err = h.store().Create(ctx, d)
	if err != nil {
		respond.ServerError(w, r, h.Log, "create document failed", err)
		return
	}
	h.Log.Info("document created",
		zap.String("document_id", d.ID.Hex()),
		zap.String("storage_key", d.StorageKey))
	respond.Created(w, "Document created.", d)
}
