// internal/app/features/surveys/questions.go
package surveys

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/mutuhub/internal/app/policy/surveypolicy"
	questionstore "github.com/dalemusser/mutuhub/internal/app/store/surveyquestions"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mutuhub/internal/app/system/inputval"
	"github.com/dalemusser/mutuhub/internal/app/system/ordering"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"github.com/dalemusser/mutuhub/internal/app/system/txn"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// loadSurvey resolves {surveyID}. It writes the error response itself and
// reports whether the caller may continue.
func (h *Handler) loadSurvey(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Survey, bool) {
	surveyID, ok := pathID(r, "surveyID")
	if !ok {
		respond.NotFound(w, "Survey")
		return models.Survey{}, false
	}
	sv, err := h.chain.Survey(ctx, surveyID)
	if errors.Is(err, surveypolicy.ErrNotFound) {
		respond.NotFound(w, "Survey")
		return models.Survey{}, false
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load survey failed", err)
		return models.Survey{}, false
	}
	return sv, true
}

// loadSurveyFor is loadSurvey plus the creator rule for perm.
func (h *Handler) loadSurveyFor(ctx context.Context, w http.ResponseWriter, r *http.Request, perm authz.Permission) (models.Survey, bool) {
	sv, ok := h.loadSurvey(ctx, w, r)
	if !ok {
		return sv, false
	}
	if !canModify(r, perm, sv) {
		respond.Forbidden(w)
		return models.Survey{}, false
	}
	return sv, true
}

func validateQuestion(in *questionInput) *inputval.Result {
	in.Pertanyaan = strings.TrimSpace(in.Pertanyaan)
	in.Tipe = strings.TrimSpace(in.Tipe)
	return inputval.Validate(*in)
}

// ServeQuestions handles GET /surveys/{surveyID}/questions.
func (h *Handler) ServeQuestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sv, ok := h.loadSurvey(ctx, w, r)
	if !ok {
		return
	}
	qs, err := h.questions().ListBySurvey(ctx, sv.ID)
	if err != nil {
		respond.ServerError(w, r, h.Log, "list questions failed", err)
		return
	}
	respond.OK(w, qs)
}

// HandleCreateQuestion handles POST /surveys/{surveyID}/questions. Without
// an explicit order the question goes after its last sibling.
func (h *Handler) HandleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sv, ok := h.loadSurveyFor(ctx, w, r, authz.UpdateSurvey)
	if !ok {
		return
	}

	var in questionInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	if res := validateQuestion(&in); res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	q := models.SurveyQuestion{
		SurveyID:   sv.ID,
		Pertanyaan: htmlsanitize.PlainText(in.Pertanyaan),
		Tipe:       in.Tipe,
		Wajib:      in.Wajib,
	}

	// Order assignment and insert share the reorder lock so a concurrent
	// create cannot pick the same max+1.
	unlock := h.locks.Lock(questionLockKey(sv.ID))
	defer unlock()

	order, ok := ordering.AssignOrRespond(ctx, w, r, h.Log, h.questions().Ordering(), sv.ID, in.Order, primitive.NilObjectID)
	if !ok {
		return
	}
	q.Order = order

	q, err := h.questions().Create(ctx, q)
	if err != nil {
		respond.ServerError(w, r, h.Log, "create question failed", err)
		return
	}
	respond.Created(w, "Question added.", q)
}

// HandleUpdateQuestion handles PUT /surveys/{surveyID}/questions/{questionID}.
// A question that belongs to another survey answers 404.
func (h *Handler) HandleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sv, ok := h.loadSurveyFor(ctx, w, r, authz.UpdateSurvey)
	if !ok {
		return
	}
	qID, ok := pathID(r, "questionID")
	if !ok {
		respond.NotFound(w, "Question")
		return
	}
	current, err := h.chain.Question(ctx, sv.ID, qID)
	if errors.Is(err, surveypolicy.ErrNotFound) {
		respond.NotFound(w, "Question")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load question failed", err)
		return
	}

	var in questionInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	if res := validateQuestion(&in); res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	current.Pertanyaan = htmlsanitize.PlainText(in.Pertanyaan)
	current.Tipe = in.Tipe
	current.Wajib = in.Wajib
	if in.Order != nil {
		unlock := h.locks.Lock(questionLockKey(sv.ID))
		defer unlock()
		order, ok := ordering.AssignOrRespond(ctx, w, r, h.Log, h.questions().Ordering(), sv.ID, in.Order, qID)
		if !ok {
			return
		}
		current.Order = order
	}
	if err := h.questions().Update(ctx, sv.ID, qID, current, in.Order != nil); err != nil {
		if errors.Is(err, questionstore.ErrNotFound) {
			respond.NotFound(w, "Question")
			return
		}
		respond.ServerError(w, r, h.Log, "update question failed", err)
		return
	}
	respond.Flash(w, "Question updated.", current)
}

// HandleDeleteQuestion handles DELETE /surveys/{surveyID}/questions/{questionID}.
// The question's options go with it.
func (h *Handler) HandleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sv, ok := h.loadSurveyFor(ctx, w, r, authz.UpdateSurvey)
	if !ok {
		return
	}
	qID, ok := pathID(r, "questionID")
	if !ok {
		respond.NotFound(w, "Question")
		return
	}
	if _, err := h.chain.Question(ctx, sv.ID, qID); err != nil {
		if errors.Is(err, surveypolicy.ErrNotFound) {
			respond.NotFound(w, "Question")
			return
		}
		respond.ServerError(w, r, h.Log, "load question failed", err)
		return
	}

	err := txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if _, err := h.options().DeleteByQuestions(ctx, []primitive.ObjectID{qID}); err != nil {
			return err
		}
		return h.questions().Delete(ctx, sv.ID, qID)
	})
	if errors.Is(err, questionstore.ErrNotFound) {
		respond.NotFound(w, "Question")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "delete question failed", err)
		return
	}
	h.Log.Info("question deleted", zap.String("survey_id", sv.ID.Hex()), zap.String("question_id", qID.Hex()))
	respond.Flash(w, "Question deleted.", nil)
}

func questionLockKey(surveyID primitive.ObjectID) string {
	return "survey_questions:" + surveyID.Hex()
}
