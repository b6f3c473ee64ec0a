// internal/app/features/units/new.go
package units

import (
	"context"
	"errors"
	"net/http"

	unitstore "github.com/dalemusser/mutuhub/internal/app/store/units"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate handles POST /units.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in unitInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	// The id is chosen up front so the hierarchy checks can refer to it.
	u, res, err := h.unitFromInput(ctx, primitive.NewObjectID(), in)
	if err != nil {
		respond.ServerError(w, r, h.Log, "create unit: validation lookup failed", err)
		return
	}
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	u, err = h.store().Create(ctx, u)
	if errors.Is(err, unitstore.ErrDuplicateKode) {
		respond.ValidationField(w, "kode", "A unit with this kode already exists.")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "create unit failed", err)
		return
	}
	h.Log.Info("unit created", zap.String("unit_id", u.ID.Hex()), zap.String("kode", u.Kode))
	respond.Created(w, "Unit created.", u)
}
