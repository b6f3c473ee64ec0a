// internal/app/features/periodes/new.go
package periodes

import (
	"context"
	"errors"
	"net/http"

	periodestore "github.com/dalemusser/mutuhub/internal/app/store/periodes"
	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/app/system/metrics"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleCreate handles POST /periodes. is_active=true deactivates every
// other periode in the same transaction.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in periodeInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	p, res := in.toPeriode()
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}
	if p.IsActive && !auth.Can(r, authz.ActivatePeriode) {
		respond.Forbidden(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.store().Create(ctx, p)
	switch {
	case errors.Is(err, periodestore.ErrDuplicateKode):
		respond.ValidationField(w, "kode", "A periode with this kode already exists.")
		return
	case errors.Is(err, periodestore.ErrActiveConflict):
		respond.Conflict(w, "Another periode was activated at the same time. Please try again.")
		return
	case err != nil:
		respond.ServerError(w, r, h.Log, "create periode failed", err)
		return
	}

	if p.IsActive {
		metrics.PeriodeActivations.Inc()
	}
	h.Log.Info("periode created", zap.String("periode_id", p.ID.Hex()), zap.Bool("active", p.IsActive))
	respond.Created(w, "Periode created.", p)
}
