// internal/app/features/surveys/delete.go
package surveys

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/mutuhub/internal/app/policy/surveypolicy"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"github.com/dalemusser/mutuhub/internal/app/system/txn"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /surveys/{surveyID}. The survey, its questions and
// their options are removed in one transaction.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "surveyID")
	if !ok {
		respond.NotFound(w, "Survey")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	sv, err := h.chain.Survey(ctx, id)
	if errors.Is(err, surveypolicy.ErrNotFound) {
		respond.NotFound(w, "Survey")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "delete survey: load failed", err)
		return
	}
	if !canModify(r, authz.DeleteSurvey, sv) {
		respond.Forbidden(w)
		return
	}

	var nQuestions, nOptions int64
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		qIDs, err := h.questions().IDsBySurvey(ctx, id)
		if err != nil {
			return err
		}
		if nOptions, err = h.options().DeleteByQuestions(ctx, qIDs); err != nil {
			return err
		}
		if nQuestions, err = h.questions().DeleteBySurvey(ctx, id); err != nil {
			return err
		}
		_, err = h.surveys().Delete(ctx, id)
		return err
	})
	if err != nil {
		respond.ServerError(w, r, h.Log, "delete survey failed", err)
		return
	}

	h.Log.Info("survey deleted",
		zap.String("survey_id", id.Hex()),
		zap.Int64("questions", nQuestions),
		zap.Int64("options", nOptions))
	respond.Flash(w, "Survey deleted.", nil)
}
