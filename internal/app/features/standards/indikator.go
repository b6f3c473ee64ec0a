// internal/app/features/standards/indikator.go
package standards

import (
	"context"
	"errors"
	"net/http"

	standarstore "github.com/dalemusser/mutuhub/internal/app/store/standards"
	"github.com/dalemusser/mutuhub/internal/app/system/ordering"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"github.com/dalemusser/mutuhub/internal/app/system/txn"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// loadIndikator resolves {standarID}/{indikatorID}. An indikator of another
// standar answers 404.
func (h *Handler) loadIndikator(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Indikator, bool) {
	sm, ok := h.loadStandar(ctx, w, r)
	if !ok {
		return models.Indikator{}, false
	}
	id, ok := pathID(r, "indikatorID")
	if !ok {
		respond.NotFound(w, "Indikator")
		return models.Indikator{}, false
	}
	ind, err := h.store().GetIndikator(ctx, sm.ID, id)
	if errors.Is(err, standarstore.ErrIndikatorNotFound) {
		respond.NotFound(w, "Indikator")
		return models.Indikator{}, false
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load indikator failed", err)
		return models.Indikator{}, false
	}
	return ind, true
}

// ServeIndikator handles GET /standards/{standarID}/indikator.
func (h *Handler) ServeIndikator(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sm, ok := h.loadStandar(ctx, w, r)
	if !ok {
		return
	}
	rows, err := h.store().ListIndikator(ctx, sm.ID)
	if err != nil {
		respond.ServerError(w, r, h.Log, "list indikator failed", err)
		return
	}
	respond.OK(w, rows)
}

// HandleCreateIndikator handles POST /standards/{standarID}/indikator.
func (h *Handler) HandleCreateIndikator(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sm, ok := h.loadStandar(ctx, w, r)
	if !ok {
		return
	}

	var in indikatorInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	ind, res := in.toIndikator()
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}
	ind.StandarID = sm.ID

	unlock := h.locks.Lock(indikatorLockKey(sm.ID))
	defer unlock()

	order, ok := ordering.AssignOrRespond(ctx, w, r, h.Log, h.store().IndikatorOrdering(), sm.ID, in.Order, primitive.NilObjectID)
	if !ok {
		return
	}
	ind.Order = order

	ind, err := h.store().CreateIndikator(ctx, ind)
	if err != nil {
		respond.ServerError(w, r, h.Log, "create indikator failed", err)
		return
	}
	respond.Created(w, "Indikator added.", ind)
}

// HandleUpdateIndikator handles PUT /standards/{standarID}/indikator/{indikatorID}.
func (h *Handler) HandleUpdateIndikator(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	current, ok := h.loadIndikator(ctx, w, r)
	if !ok {
		return
	}

	var in indikatorInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	ind, res := in.toIndikator()
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	if in.Order != nil {
		unlock := h.locks.Lock(indikatorLockKey(current.StandarID))
		defer unlock()
		if _, ok := ordering.AssignOrRespond(ctx, w, r, h.Log, h.store().IndikatorOrdering(), current.StandarID, in.Order, current.ID); !ok {
			return
		}
	}

	err := h.store().UpdateIndikator(ctx, current.StandarID, current.ID, ind)
	if errors.Is(err, standarstore.ErrIndikatorNotFound) {
		respond.NotFound(w, "Indikator")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "update indikator failed", err)
		return
	}

	current.Kode = ind.Kode
	current.Deskripsi = ind.Deskripsi
	current.Target = ind.Target
	if ind.Order > 0 {
		current.Order = ind.Order
	}
	respond.Flash(w, "Indikator updated.", current)
}

// HandleDeleteIndikator handles DELETE /standards/{standarID}/indikator/{indikatorID}.
// Its pertanyaan are removed in the same transaction.
func (h *Handler) HandleDeleteIndikator(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ind, ok := h.loadIndikator(ctx, w, r)
	if !ok {
		return
	}

	err := txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		return h.store().DeleteIndikator(ctx, ind.StandarID, ind.ID)
	})
	if errors.Is(err, standarstore.ErrIndikatorNotFound) {
		respond.NotFound(w, "Indikator")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "delete indikator failed", err)
		return
	}
	respond.Flash(w, "Indikator deleted.", nil)
}
