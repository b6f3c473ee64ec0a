// internal/domain/models/dosen.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dosen is a lecturer. UnitID is the dosen's home unit, if any.
type Dosen struct {
	ID        primitive.ObjectID  `bson:"_id" json:"id"`
	NIDN      string              `bson:"nidn" json:"nidn"`
	Nama      string              `bson:"nama" json:"nama"`
	NamaCI    string              `bson:"nama_ci" json:"-"`
	Email     string              `bson:"email,omitempty" json:"email,omitempty"`
	Jabatan   string              `bson:"jabatan,omitempty" json:"jabatan,omitempty"`
	UnitID    *primitive.ObjectID `bson:"unit_id,omitempty" json:"unit_id,omitempty"`
	Status    bool                `bson:"status" json:"status"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}
