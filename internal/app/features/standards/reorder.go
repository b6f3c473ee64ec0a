// internal/app/features/standards/reorder.go
package standards

import (
	"context"
	"net/http"

	"github.com/dalemusser/mutuhub/internal/app/system/ordering"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
)

// HandleReorderIndikator handles POST /standards/{standarID}/indikator/reorder.
func (h *Handler) HandleReorderIndikator(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sm, ok := h.loadStandar(ctx, w, r)
	if !ok {
		return
	}
	ordering.ServeReorder(ctx, w, r, h.Log, ordering.Target{
		Engine:     h.store().IndikatorOrdering(),
		ParentID:   sm.ID,
		Locks:      h.locks,
		LockKey:    indikatorLockKey(sm.ID),
		Collection: "indikator",
		Noun:       "indikator",
		Flash:      "Order saved.",
	})
}

// HandleReorderPertanyaan handles POST .../indikator/{indikatorID}/pertanyaan/reorder.
func (h *Handler) HandleReorderPertanyaan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ind, ok := h.loadIndikator(ctx, w, r)
	if !ok {
		return
	}
	ordering.ServeReorder(ctx, w, r, h.Log, ordering.Target{
		Engine:     h.store().PertanyaanOrdering(),
		ParentID:   ind.ID,
		Locks:      h.locks,
		LockKey:    pertanyaanLockKey(ind.ID),
		Collection: "pertanyaan",
		Noun:       "pertanyaan",
		Flash:      "Order saved.",
	})
}
