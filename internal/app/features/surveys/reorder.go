// internal/app/features/surveys/reorder.go
package surveys

import (
	"context"
	"net/http"

	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/app/system/ordering"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
)

// HandleReorderQuestions handles POST /survey-questions/{surveyID}/reorder.
//
// Body: {"ids": [...]} in the new display order. Malformed, duplicate or
// unknown ids answer 422. Ids of questions belonging to another survey are
// skipped; omitted questions keep their order.
func (h *Handler) HandleReorderQuestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sv, ok := h.loadSurveyFor(ctx, w, r, authz.ReorderSurvey)
	if !ok {
		return
	}
	ordering.ServeReorder(ctx, w, r, h.Log, ordering.Target{
		Engine:     h.questions().Ordering(),
		ParentID:   sv.ID,
		Locks:      h.locks,
		LockKey:    questionLockKey(sv.ID),
		Collection: "survey_questions",
		Noun:       "questions",
		Flash:      "Question order saved.",
	})
}

// HandleReorderOptions handles POST /survey-options/{questionID}/reorder.
func (h *Handler) HandleReorderOptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q, ok := h.loadQuestion(ctx, w, r, authz.ReorderSurvey)
	if !ok {
		return
	}
	ordering.ServeReorder(ctx, w, r, h.Log, ordering.Target{
		Engine:     h.options().Ordering(),
		ParentID:   q.ID,
		Locks:      h.locks,
		LockKey:    optionLockKey(q.ID),
		Collection: "survey_options",
		Noun:       "options",
		Flash:      "Option order saved.",
	})
}
