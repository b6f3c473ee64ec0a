// internal/app/features/dosen/new.go
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

// HandleCreate handles POST /dosen.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in dosenInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, res, err := h.dosenFromInput(ctx, in)
	if err != nil {
		respond.ServerError(w, r, h.Log, "create dosen: unit lookup failed", err)
		return
	}
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	d, err = h.store().Create(ctx, d)
	if errors.Is(err, dosenstore.ErrDuplicateNIDN) {
		respond.ValidationField(w, "nidn", "A dosen with this NIDN already exists.")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "create dosen failed", err)
		return
	}
	h.Log.Info("dosen created", zap.String("dosen_id", d.ID.Hex()))
	respond.Created(w, "Dosen created.", d)
}
