// internal/app/features/dosen/handler.go
package dosen

import (
	"context"
	"errors"
	"net/http"
	"strings"

	dosenstore "github.com/dalemusser/mutuhub/internal/app/store/dosen"
	unitstore "github.com/dalemusser/mutuhub/internal/app/store/units"
	"github.com/dalemusser/mutuhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mutuhub/internal/app/system/inputval"
	"github.com/dalemusser/mutuhub/internal/app/system/normalize"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Dosen.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a Dosen handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

type dosenInput struct {
	NIDN    string `json:"nidn" validate:"required,numeric,min=8,max=20" label:"NIDN"`
	Nama    string `json:"nama" validate:"required,max=255" label:"Nama"`
	Email   string `json:"email" validate:"omitempty,email,max=255" label:"Email"`
	Jabatan string `json:"jabatan" validate:"max=100" label:"Jabatan"`
	UnitID  string `json:"unit_id" validate:"omitempty,objectid" label:"Unit"`
	Status  *bool  `json:"status"`
}

func (h *Handler) store() *dosenstore.Store { return dosenstore.New(h.DB) }

func pathID(r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, "id")))
	return oid, err == nil
}

// dosenFromInput validates in and checks the home unit exists.
func (h *Handler) dosenFromInput(ctx context.Context, in dosenInput) (models.Dosen, *inputval.Result, error) {
	in.NIDN = normalize.Digits(in.NIDN)
	in.Nama = normalize.Name(in.Nama)
	in.Email = normalize.Email(in.Email)
	in.Jabatan = normalize.Name(in.Jabatan)
	res := inputval.Validate(in)
	if res.HasErrors() {
		return models.Dosen{}, res, nil
	}

	unitID, _ := inputval.OptionalObjectID(in.UnitID)
	if unitID != nil {
		_, err := unitstore.New(h.DB).GetByID(ctx, *unitID)
		if errors.Is(err, unitstore.ErrNotFound) {
			res.Add("unit_id", "Unit does not exist.")
			return models.Dosen{}, res, nil
		}
		if err != nil {
			return models.Dosen{}, nil, err
		}
	}

	status := true
	if in.Status != nil {
		status = *in.Status
	}
	return models.Dosen{
		NIDN:    in.NIDN,
		Nama:    htmlsanitize.PlainText(in.Nama),
		Email:   in.Email,
		Jabatan: htmlsanitize.PlainText(in.Jabatan),
		UnitID:  unitID,
		Status:  status,
	}, res, nil
}
