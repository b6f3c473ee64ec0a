package documentstore_test

import (
	"errors"
	"strings"
	"testing"

	documentstore "github.com/dalemusser/mutuhub/internal/app/store/documents"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/dalemusser/mutuhub/internal/testutil"
	"github.com/google/uuid"
)

func TestNewStorageKey(t *testing.T) {
	key := documentstore.NewStorageKey(models.KategoriManual)
	prefix := models.KategoriManual + "/"
	if !strings.HasPrefix(key, prefix) {
		t.Fatalf("key %q lacks prefix %q", key, prefix)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(key, prefix)); err != nil {
		t.Errorf("key suffix is not a uuid: %v", err)
	}
	if key == documentstore.NewStorageKey(models.KategoriManual) {
		t.Error("storage keys should be unique")
	}
}

func TestStore_CreateUpdateKeepsStorageKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := documentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUnit(ctx, "LPM", models.TipeUnit, nil)
	d, err := store.Create(ctx, models.Document{Judul: "Manual Mutu", Kategori: models.KategoriManual, UnitID: &u.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	d.Judul = "Manual Mutu 2025"
	d.Kategori = models.KategoriKebijakan
	d.UnitID = nil
	if err := store.Update(ctx, d.ID, d); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.StorageKey != d.StorageKey {
		t.Errorf("storage key changed: %q -> %q", d.StorageKey, got.StorageKey)
	}
	if got.UnitID != nil || got.Kategori != models.KategoriKebijakan {
		t.Errorf("got %+v", got)
	}

	if err := store.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, d.ID); !errors.Is(err, documentstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
