package indexes_test

import (
	"testing"
	"time"

	"github.com/dalemusser/mutuhub/internal/app/system/indexes"
	"github.com/dalemusser/mutuhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func indexNames(t *testing.T, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := map[string]bool{}
	for cur.Next(ctx) {
		var ix bson.M
		if err := cur.Decode(&ix); err != nil {
			t.Fatalf("decode index: %v", err)
		}
		names[ix["name"].(string)] = true
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesNamedIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	want := map[string][]string{
		"units":            {"uniq_units_kodeci", "idx_units_parent_nameci"},
		"periodes":         {"uniq_periodes_kodeci", "uniq_periodes_active"},
		"survey_questions": {"idx_questions_survey_order"},
		"survey_options":   {"idx_options_question_order"},
		"dosen":            {"uniq_dosen_nidn"},
	}
	for coll, names := range want {
		got := indexNames(t, db, coll)
		for _, n := range names {
			if !got[n] {
				t.Errorf("%s: missing index %q (have %v)", coll, n, got)
			}
		}
	}
}

func TestEnsureAll_SecondActivePeriodeRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	fx := testutil.NewFixtures(t, db)
	fx.CreatePeriode(ctx, "2024", false)
	fx.CreatePeriode(ctx, "2025", true)

	_, err := db.Collection("periodes").InsertOne(ctx, bson.M{
		"_id": primitive.NewObjectID(), "kode": "2026", "kode_ci": "2026",
		"is_active": true, "created_at": time.Now(),
	})
	if err == nil {
		t.Fatal("expected duplicate key error for a second active periode")
	}
}
