// internal/app/features/surveys/types.go
package surveys

type surveyInput struct {
	Judul     string `json:"judul" validate:"required,max=255" label:"Judul"`
	Deskripsi string `json:"deskripsi" validate:"max=5000" label:"Deskripsi"`
	PeriodeID string `json:"periode_id" validate:"omitempty,objectid" label:"Periode"`
	StartsAt  string `json:"starts_at" validate:"required,date" label:"Starts at"`
	EndsAt    string `json:"ends_at" validate:"required,date" label:"Ends at"`
	Status    *bool  `json:"status"`
}

type questionInput struct {
	Pertanyaan string `json:"pertanyaan" validate:"required,max=1000" label:"Pertanyaan"`
	Tipe       string `json:"tipe" validate:"required,questiontype" label:"Tipe"`
	Wajib      bool   `json:"wajib"`
	Order      *int   `json:"order" validate:"omitempty,gte=1" label:"Order"`
}

type optionInput struct {
	Label string `json:"label" validate:"required,max=255" label:"Label"`
	Nilai int    `json:"nilai" validate:"gte=0,max=1000" label:"Nilai"`
	Order *int   `json:"order" validate:"omitempty,gte=1" label:"Order"`
}

