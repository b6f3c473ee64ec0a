package standards_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/mutuhub/internal/app/features/standards"
	"github.com/dalemusser/mutuhub/internal/app/system/indexes"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/dalemusser/mutuhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*standards.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return standards.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func withParams(req *http.Request, kv ...string) *http.Request {
	for i := 0; i+1 < len(kv); i += 2 {
		req = testutil.WithChiURLParam(req, kv[i], kv[i+1])
	}
	return req
}

func TestHandleCreate_DuplicateKode(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, fx.DB(), zap.NewNop()); err != nil {
		t.Fatalf("indexes: %v", err)
	}

	post := func() *testutil.ResponseRecorder {
		req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/standards", map[string]any{
			"kode": " sn-01 ",
			"nama": "Standar Pendidikan",
		}, testutil.AuditorUser())
		rec := testutil.NewRecorder()
		h.HandleCreate(rec, req)
		return rec
	}

	first := post()
	first.AssertStatus(t, http.StatusCreated)
	var sm models.StandarMutu
	first.DecodeData(t, &sm)
	if sm.Kode != "SN-01" || !sm.Status {
		t.Errorf("unexpected standar %+v", sm)
	}

	second := post()
	second.AssertStatus(t, http.StatusUnprocessableEntity)
	if msg := second.Decode(t).Errors["kode"]; msg != "A standar mutu with this kode already exists." {
		t.Errorf("errors[kode] = %q", msg)
	}
}

func TestHandleCreateIndikator_AppendsOrder(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sm := fx.CreateStandar(ctx, "SN-01")
	fx.CreateIndikator(ctx, sm.ID, 1)
	fx.CreateIndikator(ctx, sm.ID, 4)

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/standards/"+sm.ID.Hex()+"/indikator", map[string]any{
		"kode":      "ind-3",
		"deskripsi": "Rasio dosen mahasiswa",
		"target":    "1:30",
	}, testutil.AuditorUser())
	req = withParams(req, "standarID", sm.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleCreateIndikator(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var ind models.Indikator
	rec.DecodeData(t, &ind)
	if ind.Order != 5 || ind.Kode != "IND-3" || ind.StandarID != sm.ID {
		t.Errorf("unexpected indikator %+v", ind)
	}
}

func TestHandleCreateIndikator_ExplicitOrderTaken(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sm := fx.CreateStandar(ctx, "SN-01")
	fx.CreateIndikator(ctx, sm.ID, 1)
	fx.CreateIndikator(ctx, sm.ID, 2)

	post := func(order int) *testutil.ResponseRecorder {
		req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/", map[string]any{
			"kode":      "ind-x",
			"deskripsi": "Indikator baru",
			"order":     order,
		}, testutil.AuditorUser())
		req = withParams(req, "standarID", sm.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleCreateIndikator(rec, req)
		return rec
	}

	taken := post(2)
	taken.AssertStatus(t, http.StatusUnprocessableEntity)
	if msg := taken.Decode(t).Errors["order"]; msg != "Another item already holds this position." {
		t.Errorf("errors[order] = %q", msg)
	}
	post(0).AssertStatus(t, http.StatusUnprocessableEntity)

	n, err := fx.DB().Collection("indikator").CountDocuments(ctx, bson.M{"standar_id": sm.ID})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("rejected creates inserted rows: count = %d", n)
	}

	ok := post(6)
	ok.AssertStatus(t, http.StatusCreated)
	var ind models.Indikator
	ok.DecodeData(t, &ind)
	if ind.Order != 6 {
		t.Errorf("order = %d, want 6", ind.Order)
	}
}

func TestHandleUpdatePertanyaan_OrderHeldBySibling(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sm := fx.CreateStandar(ctx, "SN-01")
	ind := fx.CreateIndikator(ctx, sm.ID, 1)
	fx.CreatePertanyaan(ctx, ind.ID, 1)
	p := fx.CreatePertanyaan(ctx, ind.ID, 2)

	put := func(order int) *testutil.ResponseRecorder {
		req := testutil.NewAuthenticatedRequest(t, http.MethodPut, "/", map[string]any{
			"teks":  "Pertanyaan",
			"order": order,
		}, testutil.AuditorUser())
		req = withParams(req, "standarID", sm.ID.Hex(), "indikatorID", ind.ID.Hex(), "pertanyaanID", p.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleUpdatePertanyaan(rec, req)
		return rec
	}

	put(1).AssertStatus(t, http.StatusUnprocessableEntity)
	put(2).AssertStatus(t, http.StatusOK)
	put(3).AssertStatus(t, http.StatusOK)

	var got models.Pertanyaan
	if err := fx.DB().Collection("pertanyaan").FindOne(ctx, bson.M{"_id": p.ID}).Decode(&got); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Order != 3 {
		t.Errorf("order = %d, want 3", got.Order)
	}
}

func TestHandleUpdateIndikator_WrongStandar(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateStandar(ctx, "SN-A")
	b := fx.CreateStandar(ctx, "SN-B")
	ind := fx.CreateIndikator(ctx, b.ID, 1)

	req := testutil.NewAuthenticatedRequest(t, http.MethodPut, "/", map[string]any{
		"deskripsi": "Changed",
	}, testutil.AuditorUser())
	req = withParams(req, "standarID", a.ID.Hex(), "indikatorID", ind.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdateIndikator(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)

	var got models.Indikator
	if err := fx.DB().Collection("indikator").FindOne(ctx, bson.M{"_id": ind.ID}).Decode(&got); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Deskripsi != "Indikator" {
		t.Errorf("indikator of another standar was changed: %+v", got)
	}
}

func TestPertanyaan_CreateAndCrossOwner(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sm := fx.CreateStandar(ctx, "SN-01")
	ind := fx.CreateIndikator(ctx, sm.ID, 1)
	other := fx.CreateIndikator(ctx, sm.ID, 2)
	foreign := fx.CreatePertanyaan(ctx, other.ID, 1)

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/", map[string]any{
		"teks": "Apakah  dokumen tersedia?",
	}, testutil.AuditorUser())
	req = withParams(req, "standarID", sm.ID.Hex(), "indikatorID", ind.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleCreatePertanyaan(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var p models.Pertanyaan
	rec.DecodeData(t, &p)
	if p.Order != 1 || p.Teks != "Apakah dokumen tersedia?" {
		t.Errorf("unexpected pertanyaan %+v", p)
	}

	del := testutil.NewAuthenticatedRequest(t, http.MethodDelete, "/", nil, testutil.AdminUser())
	del = withParams(del, "standarID", sm.ID.Hex(), "indikatorID", ind.ID.Hex(), "pertanyaanID", foreign.ID.Hex())
	drec := testutil.NewRecorder()
	h.HandleDeletePertanyaan(drec, del)
	drec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleDelete_Cascades(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sm := fx.CreateStandar(ctx, "SN-01")
	keep := fx.CreateStandar(ctx, "SN-02")
	ind := fx.CreateIndikator(ctx, sm.ID, 1)
	fx.CreatePertanyaan(ctx, ind.ID, 1)
	fx.CreatePertanyaan(ctx, ind.ID, 2)
	keptInd := fx.CreateIndikator(ctx, keep.ID, 1)
	fx.CreatePertanyaan(ctx, keptInd.ID, 1)

	req := testutil.NewAuthenticatedRequest(t, http.MethodDelete, "/", nil, testutil.AdminUser())
	req = withParams(req, "standarID", sm.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	count := func(coll string, filter bson.M) int64 {
		n, err := fx.DB().Collection(coll).CountDocuments(ctx, filter)
		if err != nil {
			t.Fatalf("count %s: %v", coll, err)
		}
		return n
	}
	if n := count("indikator", bson.M{"standar_id": sm.ID}); n != 0 {
		t.Errorf("indikator left: %d", n)
	}
	if n := count("pertanyaan", bson.M{"indikator_id": ind.ID}); n != 0 {
		t.Errorf("pertanyaan left: %d", n)
	}
	if n := count("pertanyaan", bson.M{"indikator_id": keptInd.ID}); n != 1 {
		t.Errorf("unrelated pertanyaan removed: %d left", n)
	}

	again := testutil.NewRecorder()
	h.HandleDelete(again, withParams(testutil.NewAuthenticatedRequest(t, http.MethodDelete, "/", nil, testutil.AdminUser()), "standarID", sm.ID.Hex()))
	again.AssertStatus(t, http.StatusNotFound)
}

func TestHandleReorderIndikator(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sm := fx.CreateStandar(ctx, "SN-01")
	a := fx.CreateIndikator(ctx, sm.ID, 1)
	b := fx.CreateIndikator(ctx, sm.ID, 2)
	c := fx.CreateIndikator(ctx, sm.ID, 3)

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/", map[string]any{
		"ids": []string{c.ID.Hex(), a.ID.Hex(), b.ID.Hex()},
	}, testutil.AuditorUser())
	req = withParams(req, "standarID", sm.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleReorderIndikator(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	want := map[primitive.ObjectID]int{c.ID: 1, a.ID: 2, b.ID: 3}
	for id, order := range want {
		var got models.Indikator
		if err := fx.DB().Collection("indikator").FindOne(ctx, bson.M{"_id": id}).Decode(&got); err != nil {
			t.Fatalf("load: %v", err)
		}
		if got.Order != order {
			t.Errorf("indikator %s order = %d, want %d", id.Hex(), got.Order, order)
		}
	}

	bad := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/", map[string]any{
		"ids": []string{a.ID.Hex(), a.ID.Hex()},
	}, testutil.AuditorUser())
	bad = withParams(bad, "standarID", sm.ID.Hex())
	brec := testutil.NewRecorder()
	h.HandleReorderIndikator(brec, bad)
	brec.AssertStatus(t, http.StatusUnprocessableEntity)
	if msg := brec.Decode(t).Errors["ids"]; msg != "Each id may appear only once." {
		t.Errorf("errors[ids] = %q", msg)
	}
}
