// internal/app/features/surveys/list.go
package surveys

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/mutuhub/internal/app/policy/surveypolicy"
	surveystore "github.com/dalemusser/mutuhub/internal/app/store/surveys"
	"github.com/dalemusser/mutuhub/internal/app/system/paging"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/dalemusser/mutuhub/internal/app/system/search"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList handles GET /surveys.
//
// Query: q (judul prefix, case-insensitive), status, periode_id, page, limit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := search.Filter(r, "judul_ci")
	if p := strings.TrimSpace(r.URL.Query().Get("periode_id")); p != "" {
		oid, err := primitive.ObjectIDFromHex(p)
		if err != nil {
			respond.ValidationField(w, "periode_id", "Periode must be a valid ID.")
			return
		}
		filter["periode_id"] = oid
	}

	pg := paging.Parse(r)
	store := surveystore.New(h.DB)
	total, err := store.Count(ctx, filter)
	if err != nil {
		respond.ServerError(w, r, h.Log, "count surveys failed", err)
		return
	}
	rows, err := store.Find(ctx, filter, pg.FindOptions(bson.D{{Key: "starts_at", Value: -1}}))
	if err != nil {
		respond.ServerError(w, r, h.Log, "list surveys failed", err)
		return
	}
	respond.List(w, rows, paging.NewMeta(pg, total))
}

type surveyDetail struct {
	Survey    any              `json:"survey"`
	Questions []questionDetail `json:"questions"`
}

type questionDetail struct {
	Question any `json:"question"`
	Options  any `json:"options"`
}

// ServeView handles GET /surveys/{surveyID}: the survey with its questions and
// options, each list in display order.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "surveyID")
	if !ok {
		respond.NotFound(w, "Survey")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sv, err := h.chain.Survey(ctx, id)
	if errors.Is(err, surveypolicy.ErrNotFound) {
		respond.NotFound(w, "Survey")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.Log, "load survey failed", err)
		return
	}

	qs, err := h.questions().ListBySurvey(ctx, id)
	if err != nil {
		respond.ServerError(w, r, h.Log, "list questions failed", err)
		return
	}
	detail := surveyDetail{Survey: sv, Questions: make([]questionDetail, 0, len(qs))}
	for _, q := range qs {
		opts, err := h.options().ListByQuestion(ctx, q.ID)
		if err != nil {
			respond.ServerError(w, r, h.Log, "list options failed", err)
			return
		}
		detail.Questions = append(detail.Questions, questionDetail{Question: q, Options: opts})
	}
	respond.OK(w, detail)
}
