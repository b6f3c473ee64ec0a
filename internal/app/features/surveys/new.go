// internal/app/features/surveys/new.go
package surveys

import (
	"context"
	"net/http"

	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate handles POST /surveys.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in surveyInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sv, res, err := h.surveyFromInput(ctx, in)
	if err != nil {
		respond.ServerError(w, r, h.Log, "create survey: periode lookup failed", err)
		return
	}
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			sv.CreatedBy = &oid
		}
	}

	sv, err = h.surveys().Create(ctx, sv)
	if err != nil {
		respond.ServerError(w, r, h.Log, "create survey failed", err)
		return
	}
	h.Log.Info("survey created", zap.String("survey_id", sv.ID.Hex()))
	respond.Created(w, "Survey created.", sv)
}
