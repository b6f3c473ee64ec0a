// internal/app/features/surveys/options.go
package surveys

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/mutuhub/internal/app/policy/surveypolicy"
	optionstore "github.com/dalemusser/mutuhub/internal/app/store/surveyoptions"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mutuhub/internal/app/system/inputval"
	"github.com/dalemusser/mutuhub/internal/app/system/ordering"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// loadQuestion resolves {questionID} and its survey. When perm is set the
// creator rule is applied to the owning survey.
func (h *Handler) loadQuestion(ctx context.Context, w http.ResponseWriter, r *http.Request, perm authz.Permission) (models.SurveyQuestion, bool) {
	qID, ok := pathID(r, "questionID")
	if !ok {
		respond.NotFound(w, "Question")
		return models.SurveyQuestion{}, false
	}
	q, err := h.chain.QuestionByID(ctx, qID)
	if errors.Is(err, surveypolicy.ErrNotFound) {
		respond.NotFound(w, "Question")
		return models.SurveyQuestion{}, false
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load question failed", err)
		return models.SurveyQuestion{}, false
	}
	if perm == "" {
		return q, true
	}

	sv, err := h.chain.Survey(ctx, q.SurveyID)
	if errors.Is(err, surveypolicy.ErrNotFound) {
		// Orphaned question; treat as gone.
		respond.NotFound(w, "Question")
		return models.SurveyQuestion{}, false
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load survey failed", err)
		return models.SurveyQuestion{}, false
	}
	if !canModify(r, perm, sv) {
		respond.Forbidden(w)
		return models.SurveyQuestion{}, false
	}
	return q, true
}

func validateOption(in *optionInput) *inputval.Result {
	in.Label = strings.TrimSpace(in.Label)
	return inputval.Validate(*in)
}

// ServeOptions handles GET /survey-questions/{questionID}/options.
func (h *Handler) ServeOptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	q, ok := h.loadQuestion(ctx, w, r, "")
	if !ok {
		return
	}
	opts, err := h.options().ListByQuestion(ctx, q.ID)
	if err != nil {
		respond.ServerError(w, r, h.Log, "list options failed", err)
		return
	}
	respond.OK(w, opts)
}

// HandleCreateOption handles POST /survey-questions/{questionID}/options.
func (h *Handler) HandleCreateOption(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	q, ok := h.loadQuestion(ctx, w, r, authz.UpdateSurvey)
	if !ok {
		return
	}

	var in optionInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	if res := validateOption(&in); res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	o := models.SurveyOption{
		QuestionID: q.ID,
		Label:      htmlsanitize.PlainText(in.Label),
		Nilai:      in.Nilai,
	}

	unlock := h.locks.Lock(optionLockKey(q.ID))
	defer unlock()

	order, ok := ordering.AssignOrRespond(ctx, w, r, h.Log, h.options().Ordering(), q.ID, in.Order, primitive.NilObjectID)
	if !ok {
		return
	}
	o.Order = order

	o, err := h.options().Create(ctx, o)
	if err != nil {
		respond.ServerError(w, r, h.Log, "create option failed", err)
		return
	}
	respond.Created(w, "Option added.", o)
}

// loadOption resolves {optionID} under an already loaded question; an
// option of another question answers 404.
func (h *Handler) loadOption(ctx context.Context, w http.ResponseWriter, r *http.Request, q models.SurveyQuestion) (models.SurveyOption, bool) {
	oID, ok := pathID(r, "optionID")
	if !ok {
		respond.NotFound(w, "Option")
		return models.SurveyOption{}, false
	}
	o, err := h.chain.Option(ctx, q.ID, oID)
	if errors.Is(err, surveypolicy.ErrNotFound) {
		respond.NotFound(w, "Option")
		return models.SurveyOption{}, false
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load option failed", err)
		return models.SurveyOption{}, false
	}
	return o, true
}

// HandleUpdateOption handles PUT /survey-questions/{questionID}/options/{optionID}.
func (h *Handler) HandleUpdateOption(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	q, ok := h.loadQuestion(ctx, w, r, authz.UpdateSurvey)
	if !ok {
		return
	}
	current, ok := h.loadOption(ctx, w, r, q)
	if !ok {
		return
	}

	var in optionInput
	if err := respond.Decode(r, &in); err != nil {
		respond.BadRequest(w, "Invalid JSON body.")
		return
	}
	if res := validateOption(&in); res.HasErrors() {
		respond.Validation(w, res)
		return
	}

	current.Label = htmlsanitize.PlainText(in.Label)
	current.Nilai = in.Nilai
	if in.Order != nil {
		unlock := h.locks.Lock(optionLockKey(q.ID))
		defer unlock()
		order, ok := ordering.AssignOrRespond(ctx, w, r, h.Log, h.options().Ordering(), q.ID, in.Order, current.ID)
		if !ok {
			return
		}
		current.Order = order
	}
	if err := h.options().Update(ctx, q.ID, current.ID, current, in.Order != nil); err != nil {
		if errors.Is(err, optionstore.ErrNotFound) {
			respond.NotFound(w, "Option")
			return
		}
		respond.ServerError(w, r, h.Log, "update option failed", err)
		return
	}
	respond.Flash(w, "Option updated.", current)
}

// HandleDeleteOption handles DELETE /survey-questions/{questionID}/options/{optionID}.
func (h *Handler) HandleDeleteOption(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	q, ok := h.loadQuestion(ctx, w, r, authz.UpdateSurvey)
	if !ok {
		return
	}
	o, ok := h.loadOption(ctx, w, r, q)
	if !ok {
		return
	}

	if err := h.options().Delete(ctx, q.ID, o.ID); err != nil {
		if errors.Is(err, optionstore.ErrNotFound) {
			respond.NotFound(w, "Option")
			return
		}
		respond.ServerError(w, r, h.Log, "delete option failed", err)
		return
	}
	respond.Flash(w, "Option deleted.", nil)
}

func optionLockKey(questionID primitive.ObjectID) string {
	return "survey_options:" + questionID.Hex()
}
