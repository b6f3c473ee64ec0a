// internal/app/features/units/edit.go
package units

import (
	"context"
	"errors"
	"net/http"

	unitstore "github.com/dalemusser/mutuhub/internal/app/store/units"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
)

// HandleUpdate handles PUT /units/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Unit")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	current, err := h.store().GetByID(ctx, id)
	if errors.Is(err, unitstore.ErrNotFound) {
		respond.NotFound(w, "Unit")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "update unit: load failed", err)
		return
	}

	var in unitInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	u, res, err := h.unitFromInput(ctx, id, in)
	if err != nil {
		respond.ServerError(w, r, h.Log, "update unit: validation lookup failed", err)
		return
	}
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	if u.Tipe != current.Tipe {
		children, err := h.store().Children(ctx, id)
		if err != nil {
			respond.ServerError(w, r, h.Log, "update unit: load children failed", err)
			return
		}
		if verr := h.validator().ValidateChildren(u, children); verr != nil {
			if _, res, err = h.rejected(u, res, verr); err != nil {
				respond.ServerError(w, r, h.Log, "update unit: children check failed", err)
				return
			}
			respond.Validation(w, res)
			return
		}
	}

	err = h.store().Update(ctx, id, u)
	switch {
	case errors.Is(err, unitstore.ErrDuplicateKode):
		respond.ValidationField(w, "kode", "A unit with this kode already exists.")
		return
	case errors.Is(err, unitstore.ErrNotFound):
		respond.NotFound(w, "Unit")
		return
	case err != nil:
		respond.ServerError(w, r, h.Log, "update unit failed", err)
		return
	}

	u.CreatedAt = current.CreatedAt
	respond.Flash(w, "Unit updated.", u)
}
