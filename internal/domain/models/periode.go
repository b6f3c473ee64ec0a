// internal/domain/models/periode.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Periode is an assessment period. At most one periode has IsActive set.
type Periode struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Kode      string             `bson:"kode" json:"kode"`
	KodeCI    string             `bson:"kode_ci" json:"-"`
	Nama      string             `bson:"nama" json:"nama"`
	Mulai     time.Time          `bson:"mulai" json:"mulai"`
	Selesai   time.Time          `bson:"selesai" json:"selesai"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
	Status    bool               `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
