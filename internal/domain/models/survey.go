// internal/domain/models/survey.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question types accepted for SurveyQuestion.Tipe.
const (
	QuestionPilihanGanda = "pilihan_ganda"
	QuestionCheckbox     = "checkbox"
	QuestionSkala        = "skala"
	QuestionTeks         = "teks"
)

// QuestionTypes lists every accepted question type.
var QuestionTypes = []string{QuestionPilihanGanda, QuestionCheckbox, QuestionSkala, QuestionTeks}

// Survey owns an ordered list of SurveyQuestion.
type Survey struct {
	ID        primitive.ObjectID  `bson:"_id" json:"id"`
	Judul     string              `bson:"judul" json:"judul"`
	JudulCI   string              `bson:"judul_ci" json:"-"`
	Deskripsi string              `bson:"deskripsi,omitempty" json:"deskripsi,omitempty"`
	PeriodeID *primitive.ObjectID `bson:"periode_id,omitempty" json:"periode_id,omitempty"`
	StartsAt  time.Time           `bson:"starts_at" json:"starts_at"`
	EndsAt    time.Time           `bson:"ends_at" json:"ends_at"`
	Status    bool                `bson:"status" json:"status"`
	CreatedBy *primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}

// SurveyQuestion belongs to one Survey and owns an ordered list of SurveyOption.
type SurveyQuestion struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	SurveyID   primitive.ObjectID `bson:"survey_id" json:"survey_id"`
	Pertanyaan string             `bson:"pertanyaan" json:"pertanyaan"`
	Tipe       string             `bson:"tipe" json:"tipe"`
	Wajib      bool               `bson:"wajib" json:"wajib"`
	Order      int                `bson:"order" json:"order"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// SurveyOption is one answer choice of a SurveyQuestion.
type SurveyOption struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	QuestionID primitive.ObjectID `bson:"question_id" json:"question_id"`
	Label      string             `bson:"label" json:"label"`
	Nilai      int                `bson:"nilai" json:"nilai"`
	Order      int                `bson:"order" json:"order"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
