// internal/domain/models/document.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document categories.
const (
	KategoriKebijakan = "kebijakan"
	KategoriManual    = "manual"
	KategoriStandar   = "standar"
	KategoriFormulir  = "formulir"
	KategoriLaporan   = "laporan"
)

// DocumentKategori lists every accepted document category.
var DocumentKategori = []string{KategoriKebijakan, KategoriManual, KategoriStandar, KategoriFormulir, KategoriLaporan}

// Document is the metadata record of a quality document. The file itself
// lives in external storage addressed by StorageKey.
type Document struct {
	ID         primitive.ObjectID  `bson:"_id" json:"id"`
	Judul      string              `bson:"judul" json:"judul"`
	JudulCI    string              `bson:"judul_ci" json:"-"`
	Kategori   string              `bson:"kategori" json:"kategori"`
	Deskripsi  string              `bson:"deskripsi,omitempty" json:"deskripsi,omitempty"`
	UnitID     *primitive.ObjectID `bson:"unit_id,omitempty" json:"unit_id,omitempty"`
	PeriodeID  *primitive.ObjectID `bson:"periode_id,omitempty" json:"periode_id,omitempty"`
	StorageKey string              `bson:"storage_key" json:"storage_key"`
	URL        string              `bson:"url,omitempty" json:"url,omitempty"`
	CreatedAt  time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at" json:"updated_at"`
}
