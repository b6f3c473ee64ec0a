// internal/app/features/periodes/activate.go
package periodes

import (
	"context"
	"errors"
	"net/http"

	periodestore "github.com/dalemusser/mutuhub/internal/app/store/periodes"
	"github.com/dalemusser/mutuhub/internal/app/system/metrics"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleActivate handles POST /periodes/{id}/activate. Activating the
// periode that is already active is a no-op success.
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Periode")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.store().SetActive(ctx, id)
	switch {
	case errors.Is(err, periodestore.ErrNotFound):
		respond.NotFound(w, "Periode")
		return
	case errors.Is(err, periodestore.ErrActiveConflict):
		respond.Conflict(w, "Another periode was activated at the same time. Please try again.")
		return
	case err != nil:
		respond.ServerError(w, r, h.Log, "activate periode failed", err)
		return
	}

	metrics.PeriodeActivations.Inc()
	h.Log.Info("periode activated", zap.String("periode_id", id.Hex()))

	p, err := h.store().GetByID(ctx, id)
	if err != nil {
		respond.ServerError(w, r, h.Log, "reload periode failed", err)
		return
	}
	respond.Flash(w, "Periode "+p.Kode+" is now active.", p)
}
