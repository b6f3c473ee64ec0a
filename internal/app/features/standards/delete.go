// internal/app/features/standards/delete.go
package standards

import (
	"context"
	"errors"
	"net/http"

	standarstore "github.com/dalemusser/mutuhub/internal/app/store/standards"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"github.com/dalemusser/mutuhub/internal/app/system/txn"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /standards/{standarID}. The standar, its
// indikator and their pertanyaan go in one transaction.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "standarID")
	if !ok {
		respond.NotFound(w, "Standar mutu")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		return h.store().DeleteCascade(ctx, id)
	})
	if errors.Is(err, standarstore.ErrNotFound) {
		respond.NotFound(w, "Standar mutu")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "delete standar mutu failed", err)
		return
	}

	h.Log.Info("standar mutu deleted", zap.String("standar_id", id.Hex()))
	respond.Flash(w, "Standar mutu deleted.", nil)
}
