// internal/app/features/periodes/delete.go
package periodes

import (
	"context"
	"errors"
	"net/http"

	periodestore "github.com/dalemusser/mutuhub/internal/app/store/periodes"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /periodes/{id}. Periodes referenced by a
// survey answer 409. The active periode may be deleted, leaving none active.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Periode")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.store().Delete(ctx, id)
	switch {
	case errors.Is(err, periodestore.ErrNotFound):
		respond.NotFound(w, "Periode")
		return
	case errors.Is(err, periodestore.ErrInUse):
		respond.Conflict(w, "This periode is still used by one or more surveys.")
		return
	case err != nil:
		respond.ServerError(w, r, h.Log, "delete periode failed", err)
		return
	}

	h.Log.Info("periode deleted", zap.String("periode_id", id.Hex()))
	respond.Flash(w, "Periode deleted.", nil)
}
