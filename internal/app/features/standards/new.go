// internal/app/features/standards/new.go
package standards

import (
	"context"
	"errors"
	"net/http"

	standarstore "github.com/dalemusser/mutuhub/internal/app/store/standards"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleCreate handles POST /standards.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in standarInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	sm, res := in.toStandar()
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sm, err := h.store().Create(ctx, sm)
	if errors.Is(err, standarstore.ErrDuplicateKode) {
		respond.ValidationField(w, "kode", "A standar mutu with this kode already exists.")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "create standar mutu failed", err)
		return
	}
	h.Log.Info("standar mutu created", zap.String("standar_id", sm.ID.Hex()), zap.String("kode", sm.Kode))
	respond.Created(w, "Standar mutu created.", sm)
}
