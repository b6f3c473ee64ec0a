// internal/app/features/units/delete.go
package units

import (
	"context"
	"errors"
	"net/http"

	unitstore "github.com/dalemusser/mutuhub/internal/app/store/units"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /units/{id}. Units with sub-units or dosen
// answer 409 and are left in place.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Unit")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.store().Delete(ctx, id)
	switch {
	case errors.Is(err, unitstore.ErrNotFound):
		respond.NotFound(w, "Unit")
		return
	case errors.Is(err, unitstore.ErrHasChildren):
		respond.Conflict(w, "This unit still has sub-units. Move or delete them first.")
		return
	case errors.Is(err, unitstore.ErrHasDosen):
		respond.Conflict(w, "This unit still has dosen assigned. Reassign them first.")
		return
	case err != nil:
		respond.ServerError(w, r, h.Log, "delete unit failed", err)
		return
	}

	h.Log.Info("unit deleted", zap.String("unit_id", id.Hex()))
	respond.Flash(w, "Unit deleted.", nil)
}
