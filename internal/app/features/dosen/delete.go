// internal/app/features/dosen/delete.go
package dosen

import (
	"context"
	"errors"
	"net/http"

	dosenstore "github.com/dalemusser/mutuhub/internal/app/store/dosen"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /dosen/{id}. A dosen still named as a unit
// leader answers 409.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Dosen")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.store().Delete(ctx, id)
	switch {
	case errors.Is(err, dosenstore.ErrNotFound):
		respond.NotFound(w, "Dosen")
		return
	case errors.Is(err, dosenstore.ErrIsLeader):
		respond.Conflict(w, "This dosen still leads a unit. Assign another leader first.")
		return
	case err != nil:
		respond.ServerError(w, r, h.Log, "delete dosen failed", err)
		return
	}

	h.Log.Info("dosen deleted", zap.String("dosen_id", id.Hex()))
	respond.Flash(w, "Dosen deleted.", nil)
}
