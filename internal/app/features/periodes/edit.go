// internal/app/features/periodes/edit.go
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
)

// HandleUpdate handles PUT /periodes/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Periode")
		return
	}

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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, err := h.store().GetByID(ctx, id)
	if errors.Is(err, periodestore.ErrNotFound) {
		respond.NotFound(w, "Periode")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "update periode: load failed", err)
		return
	}

	// Omitting is_active keeps the stored flag; changing it in either
	// direction needs the activate permission.
	flips := in.IsActive != nil && *in.IsActive != current.IsActive
	if flips && !auth.Can(r, authz.ActivatePeriode) {
		respond.Forbidden(w)
		return
	}

	err = h.store().Update(ctx, id, p, in.IsActive)
	switch {
	case errors.Is(err, periodestore.ErrNotFound):
		respond.NotFound(w, "Periode")
		return
	case errors.Is(err, periodestore.ErrDuplicateKode):
		respond.ValidationField(w, "kode", "A periode with this kode already exists.")
		return
	case errors.Is(err, periodestore.ErrActiveConflict):
		respond.Conflict(w, "Another periode was activated at the same time. Please try again.")
		return
	case err != nil:
		respond.ServerError(w, r, h.Log, "update periode failed", err)
		return
	}
	if flips && *in.IsActive {
		metrics.PeriodeActivations.Inc()
	}

	updated, err := h.store().GetByID(ctx, id)
	if err != nil {
		respond.ServerError(w, r, h.Log, "reload periode failed", err)
		return
	}
	respond.Flash(w, "Periode updated.", updated)
}
