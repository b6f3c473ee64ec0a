// internal/app/features/standards/pertanyaan.go
package standards

import (
	"context"
	"errors"
	"net/http"

	standarstore "github.com/dalemusser/mutuhub/internal/app/store/standards"
	"github.com/dalemusser/mutuhub/internal/app/system/ordering"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServePertanyaan handles GET /standards/{standarID}/indikator/{indikatorID}/pertanyaan.
func (h *Handler) ServePertanyaan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ind, ok := h.loadIndikator(ctx, w, r)
	if !ok {
		return
	}
	rows, err := h.store().ListPertanyaan(ctx, ind.ID)
	if err != nil {
		respond.ServerError(w, r, h.Log, "list pertanyaan failed", err)
		return
	}
	respond.OK(w, rows)
}

// HandleCreatePertanyaan handles POST .../indikator/{indikatorID}/pertanyaan.
func (h *Handler) HandleCreatePertanyaan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ind, ok := h.loadIndikator(ctx, w, r)
	if !ok {
		return
	}

	var in pertanyaanInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	p, res := in.toPertanyaan()
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}
	p.IndikatorID = ind.ID

	unlock := h.locks.Lock(pertanyaanLockKey(ind.ID))
	defer unlock()

	order, ok := ordering.AssignOrRespond(ctx, w, r, h.Log, h.store().PertanyaanOrdering(), ind.ID, in.Order, primitive.NilObjectID)
	if !ok {
		return
	}
	p.Order = order

	p, err := h.store().CreatePertanyaan(ctx, p)
	if err != nil {
		respond.ServerError(w, r, h.Log, "create pertanyaan failed", err)
		return
	}
	respond.Created(w, "Pertanyaan added.", p)
}

func (h *Handler) loadPertanyaan(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Pertanyaan, bool) {
	ind, ok := h.loadIndikator(ctx, w, r)
	if !ok {
		return models.Pertanyaan{}, false
	}
	id, ok := pathID(r, "pertanyaanID")
	if !ok {
		respond.NotFound(w, "Pertanyaan")
		return models.Pertanyaan{}, false
	}
	p, err := h.store().GetPertanyaan(ctx, ind.ID, id)
	if errors.Is(err, standarstore.ErrPertanyaanMissing) {
		respond.NotFound(w, "Pertanyaan")
		return models.Pertanyaan{}, false
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load pertanyaan failed", err)
		return models.Pertanyaan{}, false
	}
	return p, true
}

// HandleUpdatePertanyaan handles PUT .../pertanyaan/{pertanyaanID}.
func (h *Handler) HandleUpdatePertanyaan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	current, ok := h.loadPertanyaan(ctx, w, r)
	if !ok {
		return
	}

	var in pertanyaanInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	p, res := in.toPertanyaan()
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	if in.Order != nil {
		unlock := h.locks.Lock(pertanyaanLockKey(current.IndikatorID))
		defer unlock()
		if _, ok := ordering.AssignOrRespond(ctx, w, r, h.Log, h.store().PertanyaanOrdering(), current.IndikatorID, in.Order, current.ID); !ok {
			return
		}
	}

	err := h.store().UpdatePertanyaan(ctx, current.IndikatorID, current.ID, p)
	if errors.Is(err, standarstore.ErrPertanyaanMissing) {
		respond.NotFound(w, "Pertanyaan")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "update pertanyaan failed", err)
		return
	}

	current.Teks = p.Teks
	if p.Order > 0 {
		current.Order = p.Order
	}
	respond.Flash(w, "Pertanyaan updated.", current)
}

// HandleDeletePertanyaan handles DELETE .../pertanyaan/{pertanyaanID}.
func (h *Handler) HandleDeletePertanyaan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, ok := h.loadPertanyaan(ctx, w, r)
	if !ok {
		return
	}
	err := h.store().DeletePertanyaan(ctx, p.IndikatorID, p.ID)
	if errors.Is(err, standarstore.ErrPertanyaanMissing) {
		respond.NotFound(w, "Pertanyaan")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "delete pertanyaan failed", err)
		return
	}
	respond.Flash(w, "Pertanyaan deleted.", nil)
}
