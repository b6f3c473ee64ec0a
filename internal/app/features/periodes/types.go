// internal/app/features/periodes/types.go
package periodes

import (
	"strings"

	"github.com/dalemusser/mutuhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mutuhub/internal/app/system/inputval"
	"github.com/dalemusser/mutuhub/internal/app/system/normalize"
	"github.com/dalemusser/mutuhub/internal/domain/models"
)

type periodeInput struct {
	Kode     string `json:"kode" validate:"required,max=50,kode" label:"Kode"`
	Nama     string `json:"nama" validate:"required,max=255" label:"Nama"`
	Mulai    string `json:"mulai" validate:"required,date" label:"Mulai"`
	Selesai  string `json:"selesai" validate:"required,date" label:"Selesai"`
	IsActive *bool  `json:"is_active"`
	Status   *bool  `json:"status"`
}

// toPeriode validates in, including selesai >= mulai.
func (in periodeInput) toPeriode() (models.Periode, *inputval.Result) {
	in.Kode = normalize.Kode(in.Kode)
	in.Nama = normalize.Name(in.Nama)
	in.Mulai = strings.TrimSpace(in.Mulai)
	in.Selesai = strings.TrimSpace(in.Selesai)

	res := inputval.Validate(in)
	if res.HasErrors() {
		return models.Periode{}, res
	}
	mulai, _ := inputval.ParseDate(in.Mulai)
	selesai, _ := inputval.ParseDate(in.Selesai)
	if selesai.Before(mulai) {
		res.Add("selesai", "Selesai must be on or after Mulai.")
		return models.Periode{}, res
	}

	status := true
	if in.Status != nil {
		status = *in.Status
	}
	return models.Periode{
		Kode:     in.Kode,
		Nama:     htmlsanitize.PlainText(in.Nama),
		Mulai:    mulai,
		Selesai:  selesai,
		IsActive: in.IsActive != nil && *in.IsActive,
		Status:   status,
	}, res
}
