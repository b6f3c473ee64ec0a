// internal/app/features/surveys/helpers.go
package surveys

import (
	"context"
	"errors"
	"net/http"
	"strings"

	periodestore "github.com/dalemusser/mutuhub/internal/app/store/periodes"
	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mutuhub/internal/app/system/inputval"
	"github.com/dalemusser/mutuhub/internal/app/policy/surveypolicy"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// pathID parses a hex ObjectID URL parameter.
func pathID(r *http.Request, name string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, name)))
	return oid, err == nil
}

// canModify checks perm against the survey's creator rule.
func canModify(r *http.Request, perm authz.Permission, sv models.Survey) bool {
	userID := ""
	if u, ok := auth.CurrentUser(r); ok {
		userID = u.ID
	}
	return surveypolicy.CanModify(auth.CurrentPrincipal(r), userID, perm, sv)
}

// surveyFromInput validates in and builds the survey fields it carries.
// Date order and periode existence are checked here so both surface as
// field errors.
func (h *Handler) surveyFromInput(ctx context.Context, in surveyInput) (models.Survey, *inputval.Result, error) {
	in.Judul = strings.TrimSpace(in.Judul)
	res := inputval.Validate(in)
	if res.HasErrors() {
		return models.Survey{}, res, nil
	}

	starts, _ := inputval.ParseDate(in.StartsAt)
	ends, _ := inputval.ParseDate(in.EndsAt)
	if ends.Before(starts) {
		res.Add("ends_at", "Ends at must be on or after Starts at.")
		return models.Survey{}, res, nil
	}

	periodeID, _ := inputval.OptionalObjectID(in.PeriodeID)
	if periodeID != nil {
		_, err := periodestore.New(h.DB, h.Log).GetByID(ctx, *periodeID)
		if errors.Is(err, periodestore.ErrNotFound) {
			res.Add("periode_id", "Periode does not exist.")
			return models.Survey{}, res, nil
		}
		if err != nil {
			return models.Survey{}, nil, err
		}
	}

	status := true
	if in.Status != nil {
		status = *in.Status
	}
	return models.Survey{
		Judul:     htmlsanitize.PlainText(in.Judul),
		Deskripsi: htmlsanitize.Sanitize(in.Deskripsi),
		PeriodeID: periodeID,
		StartsAt:  starts,
		EndsAt:    ends,
		Status:    status,
	}, res, nil
}
