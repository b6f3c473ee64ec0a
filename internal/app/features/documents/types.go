// internal/app/features/documents/types.go
package documents

import (
	"context"
	"errors"
	"strings"

	periodestore "github.com/dalemusser/mutuhub/internal/app/store/periodes"
	unitstore "github.com/dalemusser/mutuhub/internal/app/store/units"
	"github.com/dalemusser/mutuhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mutuhub/internal/app/system/inputval"
	"github.com/dalemusser/mutuhub/internal/app/system/normalize"
	"github.com/dalemusser/mutuhub/internal/domain/models"
)

type documentInput struct {
	Judul     string `json:"judul" validate:"required,max=255" label:"Judul"`
	Kategori  string `json:"kategori" validate:"required,kategori" label:"Kategori"`
	Deskripsi string `json:"deskripsi" validate:"max=5000" label:"Deskripsi"`
	UnitID    string `json:"unit_id" validate:"omitempty,objectid" label:"Unit"`
	PeriodeID string `json:"periode_id" validate:"omitempty,objectid" label:"Periode"`
	URL       string `json:"url" validate:"omitempty,httpurl,max=2048" label:"URL"`
}

// documentFromInput validates in and resolves the optional unit and periode
// references. Both must exist when given.
func (h *Handler) documentFromInput(ctx context.Context, in documentInput) (models.Document, *inputval.Result, error) {
	in.Judul = normalize.Name(in.Judul)
	in.Kategori = strings.ToLower(strings.TrimSpace(in.Kategori))
	in.URL = strings.TrimSpace(in.URL)
	res := inputval.Validate(in)
	if res.HasErrors() {
		return models.Document{}, res, nil
	}

	unitID, _ := inputval.OptionalObjectID(in.UnitID)
	if unitID != nil {
		_, err := unitstore.New(h.DB).GetByID(ctx, *unitID)
		if errors.Is(err, unitstore.ErrNotFound) {
			res.Add("unit_id", "Unit does not exist.")
		} else if err != nil {
			return models.Document{}, nil, err
		}
	}
	periodeID, _ := inputval.OptionalObjectID(in.PeriodeID)
	if periodeID != nil {
		_, err := periodestore.New(h.DB, h.Log).GetByID(ctx, *periodeID)
		if errors.Is(err, periodestore.ErrNotFound) {
			res.Add("periode_id", "Periode does not exist.")
		} else if err != nil {
			return models.Document{}, nil, err
		}
	}
	if res.HasErrors() {
		return models.Document{}, res, nil
	}

	return models.Document{
		Judul:     htmlsanitize.PlainText(in.Judul),
		Kategori:  in.Kategori,
		Deskripsi: htmlsanitize.Sanitize(in.Deskripsi),
		UnitID:    unitID,
		PeriodeID: periodeID,
		URL:       in.URL,
	}, res, nil
}
