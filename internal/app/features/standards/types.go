// internal/app/features/standards/types.go
package standards

import (
	"github.com/dalemusser/mutuhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mutuhub/internal/app/system/inputval"
	"github.com/dalemusser/mutuhub/internal/app/system/normalize"
	"github.com/dalemusser/mutuhub/internal/domain/models"
)

type standarInput struct {
	Kode      string `json:"kode" validate:"required,kode,max=50" label:"Kode"`
	Nama      string `json:"nama" validate:"required,max=255" label:"Nama"`
	Deskripsi string `json:"deskripsi" validate:"max=5000" label:"Deskripsi"`
	Status    *bool  `json:"status"`
}

func (in standarInput) toStandar() (models.StandarMutu, *inputval.Result) {
	in.Kode = normalize.Kode(in.Kode)
	in.Nama = normalize.Name(in.Nama)
	res := inputval.Validate(in)
	if res.HasErrors() {
		return models.StandarMutu{}, res
	}
	status := true
	if in.Status != nil {
		status = *in.Status
	}
	return models.StandarMutu{
		Kode:      in.Kode,
		Nama:      htmlsanitize.PlainText(in.Nama),
		Deskripsi: htmlsanitize.Sanitize(in.Deskripsi),
		Status:    status,
	}, res
}

type indikatorInput struct {
	Kode      string `json:"kode" validate:"omitempty,kode,max=50" label:"Kode"`
	Deskripsi string `json:"deskripsi" validate:"required,max=2000" label:"Deskripsi"`
	Target    string `json:"target" validate:"max=255" label:"Target"`
	Order     *int   `json:"order" validate:"omitempty,gte=1" label:"Order"`
}

func (in indikatorInput) toIndikator() (models.Indikator, *inputval.Result) {
	in.Kode = normalize.Kode(in.Kode)
	in.Deskripsi = normalize.Name(in.Deskripsi)
	in.Target = normalize.Name(in.Target)
	res := inputval.Validate(in)
	if res.HasErrors() {
		return models.Indikator{}, res
	}
	ind := models.Indikator{
		Kode:      in.Kode,
		Deskripsi: htmlsanitize.PlainText(in.Deskripsi),
		Target:    htmlsanitize.PlainText(in.Target),
	}
	if in.Order != nil {
		ind.Order = *in.Order
	}
	return ind, res
}

type pertanyaanInput struct {
	Teks  string `json:"teks" validate:"required,max=2000" label:"Teks"`
	Order *int   `json:"order" validate:"omitempty,gte=1" label:"Order"`
}

func (in pertanyaanInput) toPertanyaan() (models.Pertanyaan, *inputval.Result) {
	in.Teks = normalize.Name(in.Teks)
	res := inputval.Validate(in)
	if res.HasErrors() {
		return models.Pertanyaan{}, res
	}
	p := models.Pertanyaan{Teks: htmlsanitize.PlainText(in.Teks)}
	if in.Order != nil {
		p.Order = *in.Order
	}
	return p, res
}

type standarView struct {
	models.StandarMutu
	Indikator []models.Indikator `json:"indikator"`
}
