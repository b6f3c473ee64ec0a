package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", coll, err)
	}
}

// CreateUser creates an active user. password may be empty.
func (f *Fixtures) CreateUser(ctx context.Context, loginID, password, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   "User " + loginID,
		FullNameCI: text.Fold("User " + loginID),
		LoginID:    loginID,
		LoginIDCI:  text.Fold(loginID),
		Role:       role,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			f.t.Fatalf("hash password: %v", err)
		}
		u.PasswordHash = string(hash)
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateUnit creates an active unit under parent (nil for a root).
func (f *Fixtures) CreateUnit(ctx context.Context, kode, tipe string, parent *primitive.ObjectID) models.Unit {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.Unit{
		ID:        primitive.NewObjectID(),
		Kode:      kode,
		KodeCI:    text.Fold(kode),
		Nama:      "Unit " + kode,
		NamaCI:    text.Fold("Unit " + kode),
		Tipe:      tipe,
		ParentID:  parent,
		Status:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "units", u)
	return u
}

// CreateDosen creates an active dosen whose home unit is unit (may be nil).
func (f *Fixtures) CreateDosen(ctx context.Context, nidn, nama string, unit *primitive.ObjectID) models.Dosen {
	f.t.Helper()

	now := time.Now().UTC()
	d := models.Dosen{
		ID:        primitive.NewObjectID(),
		NIDN:      nidn,
		Nama:      nama,
		NamaCI:    text.Fold(nama),
		UnitID:    unit,
		Status:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "dosen", d)
	return d
}

// CreatePeriode creates a periode spanning one year from mulai.
func (f *Fixtures) CreatePeriode(ctx context.Context, kode string, active bool) models.Periode {
	f.t.Helper()

	now := time.Now().UTC()
	mulai := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := models.Periode{
		ID:        primitive.NewObjectID(),
		Kode:      kode,
		KodeCI:    text.Fold(kode),
		Nama:      "Periode " + kode,
		Mulai:     mulai,
		Selesai:   mulai.AddDate(1, 0, 0),
		IsActive:  active,
		Status:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "periodes", p)
	return p
}

// CreateSurvey creates an active survey open for one month.
func (f *Fixtures) CreateSurvey(ctx context.Context, judul string) models.Survey {
	f.t.Helper()

	now := time.Now().UTC()
	s := models.Survey{
		ID:        primitive.NewObjectID(),
		Judul:     judul,
		JudulCI:   text.Fold(judul),
		StartsAt:  now,
		EndsAt:    now.AddDate(0, 1, 0),
		Status:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "surveys", s)
	return s
}

// CreateQuestion creates a question of surveyID at the given order.
func (f *Fixtures) CreateQuestion(ctx context.Context, surveyID primitive.ObjectID, order int) models.SurveyQuestion {
	f.t.Helper()

	now := time.Now().UTC()
	q := models.SurveyQuestion{
		ID:         primitive.NewObjectID(),
		SurveyID:   surveyID,
		Pertanyaan: "Question",
		Tipe:       models.QuestionPilihanGanda,
		Order:      order,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "survey_questions", q)
	return q
}

// CreateOption creates an option of questionID at the given order.
func (f *Fixtures) CreateOption(ctx context.Context, questionID primitive.ObjectID, order int) models.SurveyOption {
	f.t.Helper()

	now := time.Now().UTC()
	o := models.SurveyOption{
		ID:         primitive.NewObjectID(),
		QuestionID: questionID,
		Label:      "Option",
		Nilai:      order,
		Order:      order,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "survey_options", o)
	return o
}

// CreateStandar creates an active standar mutu.
func (f *Fixtures) CreateStandar(ctx context.Context, kode string) models.StandarMutu {
	f.t.Helper()

	now := time.Now().UTC()
	s := models.StandarMutu{
		ID:        primitive.NewObjectID(),
		Kode:      kode,
		KodeCI:    text.Fold(kode),
		Nama:      "Standar " + kode,
		NamaCI:    text.Fold("Standar " + kode),
		Status:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "standar_mutu", s)
	return s
}

// CreateIndikator creates an indikator of standarID at the given order.
func (f *Fixtures) CreateIndikator(ctx context.Context, standarID primitive.ObjectID, order int) models.Indikator {
	f.t.Helper()

	now := time.Now().UTC()
	i := models.Indikator{
		ID:        primitive.NewObjectID(),
		StandarID: standarID,
		Kode:      "IND",
		Deskripsi: "Indikator",
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "indikator", i)
	return i
}

// CreatePertanyaan creates a pertanyaan of indikatorID at the given order.
func (f *Fixtures) CreatePertanyaan(ctx context.Context, indikatorID primitive.ObjectID, order int) models.Pertanyaan {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Pertanyaan{
		ID:          primitive.NewObjectID(),
		IndikatorID: indikatorID,
		Teks:        "Pertanyaan",
		Order:       order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "pertanyaan", p)
	return p
}
