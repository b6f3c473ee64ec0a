// internal/app/features/documents/delete.go
package documents

import (
	"context"
	"errors"
	"net/http"

	documentstore "github.com/dalemusser/mutuhub/internal/app/store/documents"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /documents/{id}. Removing the stored file is
// the storage owner's job; the key is logged so it can be swept.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.store().Delete(ctx, id); err != nil {
		if errors.Is(err, documentstore.ErrNotFound) {
			respond.NotFound(w, "Document")
			return
		}
		respond.ServerError(w, r, h.Log, "delete document failed", err)
		return
	}

	h.Log.Info("document deleted",
		zap.String("document_id", id.Hex()),
		zap.String("storage_key", d.StorageKey))
	respond.Flash(w, "Document deleted.", nil)
}
