// internal/app/features/dosen/edit.go
package dosen

import (
	"context"
	"errors"
	"net/http"

	dosenstore "github.com/dalemusser/mutuhub/internal/app/store/dosen"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
)

// HandleUpdate handles PUT /dosen/{id}. An empty unit_id clears the home unit.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.NotFound(w, "Dosen")
		return
	}

	var in dosenInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, res, err := h.dosenFromInput(ctx, in)
	if err != nil {
		respond.ServerError(w, r, h.Log, "update dosen: unit lookup failed", err)
		return
	}
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	err = h.store().Update(ctx, id, d)
	switch {
	case errors.Is(err, dosenstore.ErrNotFound):
		respond.NotFound(w, "Dosen")
		return
	case errors.Is(err, dosenstore.ErrDuplicateNIDN):
		respond.ValidationField(w, "nidn", "A dosen with this NIDN already exists.")
		return
	case err != nil:
		respond.ServerError(w, r, h.Log, "update dosen failed", err)
		return
	}

	d.ID = id
	respond.Flash(w, "Dosen updated.", d)
}
