// internal/app/features/units/helpers.go
package units

import (
	"context"
	"errors"
	"net/http"
	"strings"

	dosenstore "github.com/dalemusser/mutuhub/internal/app/store/dosen"
	"github.com/dalemusser/mutuhub/internal/app/system/hierarchy"
	"github.com/dalemusser/mutuhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mutuhub/internal/app/system/inputval"
	"github.com/dalemusser/mutuhub/internal/app/system/metrics"
	"github.com/dalemusser/mutuhub/internal/app/system/normalize"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func pathID(r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, "id")))
	return oid, err == nil
}

// unitFromInput validates in and checks the parent and leader assignment
// for the unit that will carry id. A nil error with a failed Result means
// the caller answers 422.
func (h *Handler) unitFromInput(ctx context.Context, id primitive.ObjectID, in unitInput) (models.Unit, *inputval.Result, error) {
	in.Kode = normalize.Kode(in.Kode)
	in.Nama = normalize.Name(in.Nama)
	in.Tipe = strings.ToLower(strings.TrimSpace(in.Tipe))
	res := inputval.Validate(in)
	if res.HasErrors() {
		return models.Unit{}, res, nil
	}

	parentID, _ := inputval.OptionalObjectID(in.ParentID)
	leaderID, _ := inputval.OptionalObjectID(in.LeaderID)
	status := true
	if in.Status != nil {
		status = *in.Status
	}
	u := models.Unit{
		ID:            id,
		Kode:          in.Kode,
		Nama:          htmlsanitize.PlainText(in.Nama),
		Tipe:          in.Tipe,
		ParentID:      parentID,
		LeaderID:      leaderID,
		LeaderNama:    htmlsanitize.PlainText(in.LeaderNama),
		LeaderJabatan: htmlsanitize.PlainText(in.LeaderJabatan),
		Status:        status,
	}

	v := h.validator()
	if err := v.ValidateParent(ctx, u, parentID); err != nil {
		return h.rejected(u, res, err)
	}

	if leaderID != nil {
		leader, err := dosenstore.New(h.DB).GetByID(ctx, *leaderID)
		if errors.Is(err, dosenstore.ErrNotFound) {
			res.Add("leader_id", "Leader does not exist.")
			return u, res, nil
		}
		if err != nil {
			return u, nil, err
		}
		if err := v.ValidateLeader(ctx, u, &leader); err != nil {
			return h.rejected(u, res, err)
		}
	}
	return u, res, nil
}

// rejected turns a hierarchy.Error into a field error; anything else is
// returned as a server error.
func (h *Handler) rejected(u models.Unit, res *inputval.Result, err error) (models.Unit, *inputval.Result, error) {
	herr, ok := hierarchy.AsError(err)
	if !ok {
		return u, nil, err
	}
	metrics.HierarchyRejections.WithLabelValues(herr.Field).Inc()
	h.Log.Debug("unit assignment rejected",
		zap.String("unit_id", u.ID.Hex()),
		zap.String("field", herr.Field),
		zap.String("reason", herr.Message))
	res.Add(herr.Field, herr.Message)
	return u, res, nil
}
