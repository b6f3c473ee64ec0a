// internal/domain/models/unit.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unit tipe values, from the top of the institutional hierarchy down.
const (
	TipeUniversitas = "universitas"
	TipeFakultas    = "fakultas"
	TipeProdi       = "prodi"
	TipeUnit        = "unit"
)

// UnitTipes lists every accepted tipe in hierarchy order.
var UnitTipes = []string{TipeUniversitas, TipeFakultas, TipeProdi, TipeUnit}

// Unit is a node in the institution tree (universitas, fakultas, prodi or
// a supporting unit). LeaderNama and LeaderJabatan are free text and are
// not kept in sync with the linked Dosen.
type Unit struct {
	ID            primitive.ObjectID  `bson:"_id" json:"id"`
	Kode          string              `bson:"kode" json:"kode"`
	KodeCI        string              `bson:"kode_ci" json:"-"`
	Nama          string              `bson:"nama" json:"nama"`
	NamaCI        string              `bson:"nama_ci" json:"-"`
	Tipe          string              `bson:"tipe" json:"tipe"`
	ParentID      *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	LeaderID      *primitive.ObjectID `bson:"leader_id,omitempty" json:"leader_id,omitempty"`
	LeaderNama    string              `bson:"leader_nama,omitempty" json:"leader_nama,omitempty"`
	LeaderJabatan string              `bson:"leader_jabatan,omitempty" json:"leader_jabatan,omitempty"`
	Status        bool                `bson:"status" json:"status"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}
