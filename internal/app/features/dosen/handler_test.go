package dosen_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/mutuhub/internal/app/features/dosen"
	"github.com/dalemusser/mutuhub/internal/app/system/indexes"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/dalemusser/mutuhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*dosen.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return dosen.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleCreate_NormalisesInput(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	unit := fx.CreateUnit(ctx, "TI", models.TipeProdi, nil)
	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/dosen", map[string]any{
		"nidn":    "00 1234 5678",
		"nama":    " Siti   Aminah ",
		"email":   "Siti@Kampus.AC.ID",
		"jabatan": "Lektor",
		"unit_id": unit.ID.Hex(),
	}, testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var d models.Dosen
	rec.DecodeData(t, &d)
	if d.NIDN != "0012345678" || d.Nama != "Siti Aminah" || d.Email != "siti@kampus.ac.id" {
		t.Errorf("unexpected dosen %+v", d)
	}
	if d.UnitID == nil || *d.UnitID != unit.ID {
		t.Errorf("unit_id = %v", d.UnitID)
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/dosen", map[string]any{
		"nidn":    "",
		"nama":    "X",
		"email":   "not-an-email",
		"unit_id": primitive.NewObjectID().Hex(),
	}, testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)

	errs := rec.Decode(t).Errors
	if errs["nidn"] != "NIDN is required." {
		t.Errorf("errors[nidn] = %q", errs["nidn"])
	}
	if errs["email"] != "A valid email address is required." {
		t.Errorf("errors[email] = %q", errs["email"])
	}
}

func TestHandleCreate_UnknownUnit(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/dosen", map[string]any{
		"nidn":    "0012345678",
		"nama":    "X",
		"unit_id": primitive.NewObjectID().Hex(),
	}, testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if msg := rec.Decode(t).Errors["unit_id"]; msg != "Unit does not exist." {
		t.Errorf("errors[unit_id] = %q", msg)
	}
}

func TestHandleCreate_DuplicateNIDN(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, fx.DB(), zap.NewNop()); err != nil {
		t.Fatalf("indexes: %v", err)
	}
	fx.CreateDosen(ctx, "0012345678", "First", nil)

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/dosen", map[string]any{
		"nidn": "0012345678",
		"nama": "Second",
	}, testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if msg := rec.Decode(t).Errors["nidn"]; msg != "A dosen with this NIDN already exists." {
		t.Errorf("errors[nidn] = %q", msg)
	}
}

func TestHandleUpdate_ClearsUnit(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	unit := fx.CreateUnit(ctx, "TI", models.TipeProdi, nil)
	d := fx.CreateDosen(ctx, "0012345678", "Budi", &unit.ID)

	req := testutil.NewAuthenticatedRequest(t, http.MethodPut, "/dosen/"+d.ID.Hex(), map[string]any{
		"nidn": "0012345678",
		"nama": "Budi Santoso",
	}, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", d.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var got models.Dosen
	if err := fx.DB().Collection("dosen").FindOne(ctx, bson.M{"_id": d.ID}).Decode(&got); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.UnitID != nil || got.Nama != "Budi Santoso" {
		t.Errorf("unexpected dosen %+v", got)
	}
}

func TestHandleDelete_LeaderConflict(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := fx.CreateDosen(ctx, "0012345678", "Dekan", nil)
	unit := fx.CreateUnit(ctx, "FT", models.TipeFakultas, nil)
	if _, err := fx.DB().Collection("units").UpdateByID(ctx, unit.ID, bson.M{"$set": bson.M{"leader_id": d.ID}}); err != nil {
		t.Fatalf("set leader: %v", err)
	}

	del := func() *testutil.ResponseRecorder {
		req := testutil.NewAuthenticatedRequest(t, http.MethodDelete, "/dosen/"+d.ID.Hex(), nil, testutil.AdminUser())
		req = testutil.WithChiURLParam(req, "id", d.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleDelete(rec, req)
		return rec
	}

	del().AssertStatus(t, http.StatusConflict)

	if _, err := fx.DB().Collection("units").UpdateByID(ctx, unit.ID, bson.M{"$unset": bson.M{"leader_id": ""}}); err != nil {
		t.Fatalf("clear leader: %v", err)
	}
	del().AssertStatus(t, http.StatusOK)
	del().AssertStatus(t, http.StatusNotFound)
}
