// internal/app/features/standards/edit.go
package standards

import (
	"context"
	"errors"
	"net/http"

	standarstore "github.com/dalemusser/mutuhub/internal/app/store/standards"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"github.com/dalemusser/mutuhub/internal/domain/models"
)

// loadStandar resolves {standarID}. It writes the error response itself and
// reports whether the caller may continue.
func (h *Handler) loadStandar(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.StandarMutu, bool) {
	id, ok := pathID(r, "standarID")
	if !ok {
		respond.NotFound(w, "Standar mutu")
		return models.StandarMutu{}, false
	}
	sm, err := h.store().GetByID(ctx, id)
	if errors.Is(err, standarstore.ErrNotFound) {
		respond.NotFound(w, "Standar mutu")
		return models.StandarMutu{}, false
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load standar mutu failed", err)
		return models.StandarMutu{}, false
	}
	return sm, true
}

// HandleUpdate handles PUT /standards/{standarID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "standarID")
	if !ok {
		respond.NotFound(w, "Standar mutu")
		return
	}

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

	err := h.store().Update(ctx, id, sm)
	switch {
	case errors.Is(err, standarstore.ErrNotFound):
		respond.NotFound(w, "Standar mutu")
		return
	case errors.Is(err, standarstore.ErrDuplicateKode):
		respond.ValidationField(w, "kode", "A standar mutu with this kode already exists.")
		return
	case err != nil:
		respond.ServerError(w, r, h.Log, "update standar mutu failed", err)
		return
	}

	sm.ID = id
	respond.Flash(w, "Standar mutu updated.", sm)
}
