// internal/domain/models/standar.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StandarMutu is a quality standard. It owns Indikator, which own Pertanyaan.
type StandarMutu struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Kode      string             `bson:"kode" json:"kode"`
	KodeCI    string             `bson:"kode_ci" json:"-"`
	Nama      string             `bson:"nama" json:"nama"`
	NamaCI    string             `bson:"nama_ci" json:"-"`
	Deskripsi string             `bson:"deskripsi,omitempty" json:"deskripsi,omitempty"`
	Status    bool               `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Indikator is a measurable indicator of a StandarMutu.
type Indikator struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	StandarID primitive.ObjectID `bson:"standar_id" json:"standar_id"`
	Kode      string             `bson:"kode" json:"kode"`
	Deskripsi string             `bson:"deskripsi" json:"deskripsi"`
	Target    string             `bson:"target,omitempty" json:"target,omitempty"`
	Order     int                `bson:"order" json:"order"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Pertanyaan is an audit question attached to an Indikator.
type Pertanyaan struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	IndikatorID primitive.ObjectID `bson:"indikator_id" json:"indikator_id"`
	Teks        string             `bson:"teks" json:"teks"`
	Order       int                `bson:"order" json:"order"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
