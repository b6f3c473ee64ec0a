// internal/app/features/units/types.go
package units

type unitInput struct {
	Kode          string `json:"kode" validate:"required,max=50,kode" label:"Kode"`
	Nama          string `json:"nama" validate:"required,max=255" label:"Nama"`
	Tipe          string `json:"tipe" validate:"required,tipeunit" label:"Tipe"`
	ParentID      string `json:"parent_id" validate:"omitempty,objectid" label:"Parent unit"`
	LeaderID      string `json:"leader_id" validate:"omitempty,objectid" label:"Leader"`
	LeaderNama    string `json:"leader_nama" validate:"max=255" label:"Leader nama"`
	LeaderJabatan string `json:"leader_jabatan" validate:"max=255" label:"Leader jabatan"`
	Status        *bool  `json:"status"`
}
