package surveystore_test

import (
	"errors"
	"testing"
	"time"

	surveystore "github.com/dalemusser/mutuhub/internal/app/store/surveys"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/dalemusser/mutuhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateUpdateDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := surveystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p := fx.CreatePeriode(ctx, "2025", true)
	sv, err := store.Create(ctx, models.Survey{
		Judul:     "Kepuasan Mahasiswa",
		PeriodeID: &p.ID,
		StartsAt:  start,
		EndsAt:    start.AddDate(0, 1, 0),
		Status:    true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sv.JudulCI != "kepuasan mahasiswa" {
		t.Errorf("judul_ci = %q", sv.JudulCI)
	}

	sv.Judul = "Kepuasan Dosen"
	sv.PeriodeID = nil
	if err := store.Update(ctx, sv.ID, sv); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := store.GetByID(ctx, sv.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Judul != "Kepuasan Dosen" || got.PeriodeID != nil {
		t.Errorf("got %+v", got)
	}

	if n, err := store.Delete(ctx, sv.ID); err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	if _, err := store.GetByID(ctx, sv.ID); !errors.Is(err, surveystore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.Update(ctx, primitive.NewObjectID(), sv); !errors.Is(err, surveystore.ErrNotFound) {
		t.Errorf("Update missing: expected ErrNotFound, got %v", err)
	}
}
