package periodestore_test

import (
	"errors"
	"testing"

	periodestore "github.com/dalemusser/mutuhub/internal/app/store/periodes"
	"github.com/dalemusser/mutuhub/internal/app/system/indexes"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/dalemusser/mutuhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*mongo.Database, *periodestore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	require.NoError(t, indexes.EnsureAll(ctx, db, zap.NewNop()))
	return db, periodestore.New(db, zap.NewNop())
}

func activeIDs(t *testing.T, db *mongo.Database) []primitive.ObjectID {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection("periodes").Find(ctx, bson.M{"is_active": true})
	require.NoError(t, err)
	var rows []models.Periode
	require.NoError(t, cur.All(ctx, &rows))
	ids := make([]primitive.ObjectID, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func TestSetActive_ActivateAThenB(t *testing.T) {
	db, store := setup(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreatePeriode(ctx, "2024", false)
	b := fx.CreatePeriode(ctx, "2025", false)

	require.NoError(t, store.SetActive(ctx, a.ID))
	assert.Equal(t, []primitive.ObjectID{a.ID}, activeIDs(t, db))

	require.NoError(t, store.SetActive(ctx, b.ID))
	assert.Equal(t, []primitive.ObjectID{b.ID}, activeIDs(t, db))

	// Idempotent.
	require.NoError(t, store.SetActive(ctx, b.ID))
	assert.Equal(t, []primitive.ObjectID{b.ID}, activeIDs(t, db))

	active, err := store.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.ID, active.ID)
}

func TestSetActive_MissingTarget(t *testing.T) {
	db, store := setup(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreatePeriode(ctx, "2024", true)
	err := store.SetActive(ctx, primitive.NewObjectID())
	assert.True(t, errors.Is(err, periodestore.ErrNotFound), "got %v", err)

	assert.Equal(t, []primitive.ObjectID{a.ID}, activeIDs(t, db), "current active periode untouched")
}

func TestCreate_ActiveFlipsOthers(t *testing.T) {
	db, store := setup(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreatePeriode(ctx, "2024", true)

	p, err := store.Create(ctx, models.Periode{Kode: "2025", Nama: "Periode 2025", IsActive: true, Status: true})
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.Equal(t, []primitive.ObjectID{p.ID}, activeIDs(t, db))

	_, err = store.Create(ctx, models.Periode{Kode: "2025", Nama: "Dup"})
	assert.True(t, errors.Is(err, periodestore.ErrDuplicateKode), "got %v", err)
}

func TestUpdate_ActivateAndDeactivate(t *testing.T) {
	db, store := setup(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreatePeriode(ctx, "2024", true)
	b := fx.CreatePeriode(ctx, "2025", false)

	on, off := true, false
	require.NoError(t, store.Update(ctx, b.ID, b, &on))
	assert.Equal(t, []primitive.ObjectID{b.ID}, activeIDs(t, db))

	b.Nama = "Renamed"
	require.NoError(t, store.Update(ctx, b.ID, b, nil))
	assert.Equal(t, []primitive.ObjectID{b.ID}, activeIDs(t, db), "nil keeps the flag")

	require.NoError(t, store.Update(ctx, b.ID, b, &off))
	assert.Empty(t, activeIDs(t, db))
}

func TestDelete(t *testing.T) {
	db, store := setup(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	used := fx.CreatePeriode(ctx, "2024", false)
	s := fx.CreateSurvey(ctx, "S")
	_, err := db.Collection("surveys").UpdateByID(ctx, s.ID, bson.M{"$set": bson.M{"periode_id": used.ID}})
	require.NoError(t, err)

	assert.True(t, errors.Is(store.Delete(ctx, used.ID), periodestore.ErrInUse))

	active := fx.CreatePeriode(ctx, "2025", true)
	require.NoError(t, store.Delete(ctx, active.ID))
	_, err = store.Active(ctx)
	assert.True(t, errors.Is(err, periodestore.ErrNotFound))
}
