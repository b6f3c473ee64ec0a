// internal/app/features/surveys/edit.go
package surveys

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/mutuhub/internal/app/policy/surveypolicy"
	surveystore "github.com/dalemusser/mutuhub/internal/app/store/surveys"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
)

// HandleUpdate handles PUT /surveys/{surveyID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "surveyID")
	if !ok {
		respond.NotFound(w, "Survey")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	current, err := h.chain.Survey(ctx, id)
	if errors.Is(err, surveypolicy.ErrNotFound) {
		respond.NotFound(w, "Survey")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "update survey: load failed", err)
		return
	}
	if !canModify(r, authz.UpdateSurvey, current) {
		respond.Forbidden(w)
		return
	}

	var in surveyInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	sv, res, err := h.surveyFromInput(ctx, in)
	if err != nil {
		respond.ServerError(w, r, h.Log, "update survey: periode lookup failed", err)
		return
	}
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	if err := h.surveys().Update(ctx, id, sv); err != nil {
		if errors.Is(err, surveystore.ErrNotFound) {
			respond.NotFound(w, "Survey")
			return
		}
		respond.ServerError(w, r, h.Log, "update survey failed", err)
		return
	}

	sv.ID = id
	sv.CreatedBy = current.CreatedBy
	sv.CreatedAt = current.CreatedAt
	respond.Flash(w, "Survey updated.", sv)
}
