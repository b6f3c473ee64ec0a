package hierarchy_test

import (
	"context"
	"testing"

	"github.com/dalemusser/mutuhub/internal/app/system/hierarchy"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUnits map[primitive.ObjectID]models.Unit

func (m memUnits) Unit(_ context.Context, id primitive.ObjectID) (models.Unit, error) {
	u, ok := m[id]
	if !ok {
		return models.Unit{}, hierarchy.ErrUnitNotFound
	}
	return u, nil
}

func (m memUnits) add(tipe string, parent *models.Unit) models.Unit {
	u := models.Unit{ID: primitive.NewObjectID(), Tipe: tipe}
	if parent != nil {
		pid := parent.ID
		u.ParentID = &pid
	}
	m[u.ID] = u
	return u
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	he, ok := hierarchy.AsError(err)
	require.True(t, ok, "expected *hierarchy.Error, got %v", err)
	return he.Field
}

func TestRank(t *testing.T) {
	assert.Less(t, hierarchy.Rank(models.TipeUniversitas), hierarchy.Rank(models.TipeFakultas))
	assert.Less(t, hierarchy.Rank(models.TipeFakultas), hierarchy.Rank(models.TipeProdi))
	assert.Less(t, hierarchy.Rank(models.TipeProdi), hierarchy.Rank(models.TipeUnit))
	assert.False(t, hierarchy.ValidTipe("jurusan"))
}

func TestValidateParent_SelfAlwaysRejected(t *testing.T) {
	units := memUnits{}
	u := units.add(models.TipeFakultas, nil)

	for _, strict := range []bool{false, true} {
		v := hierarchy.Validator{Strict: strict, Lookup: units}
		err := v.ValidateParent(context.Background(), u, &u.ID)
		require.Error(t, err)
		assert.Equal(t, "parent_id", fieldOf(t, err))
	}
}

func TestValidateParent_Permissive(t *testing.T) {
	units := memUnits{}
	prodi := units.add(models.TipeProdi, nil)
	fak := units.add(models.TipeFakultas, &prodi)

	v := hierarchy.Validator{Lookup: units}
	ctx := context.Background()

	// Inverted tipes and cycles pass in permissive mode.
	assert.NoError(t, v.ValidateParent(ctx, fak, &prodi.ID))
	assert.NoError(t, v.ValidateParent(ctx, prodi, &fak.ID))

	ghost := primitive.NewObjectID()
	assert.Error(t, v.ValidateParent(ctx, fak, &ghost), "parent must exist")
	assert.NoError(t, v.ValidateParent(ctx, fak, nil))
}

func TestValidateParent_StrictRank(t *testing.T) {
	units := memUnits{}
	univ := units.add(models.TipeUniversitas, nil)
	fak := units.add(models.TipeFakultas, &univ)
	prodi := units.add(models.TipeProdi, &fak)

	v := hierarchy.Validator{Strict: true, Lookup: units}
	ctx := context.Background()

	assert.NoError(t, v.ValidateParent(ctx, models.Unit{ID: primitive.NewObjectID(), Tipe: models.TipeProdi}, &fak.ID))
	assert.NoError(t, v.ValidateParent(ctx, models.Unit{ID: primitive.NewObjectID(), Tipe: models.TipeUnit}, &univ.ID))

	err := v.ValidateParent(ctx, models.Unit{ID: primitive.NewObjectID(), Tipe: models.TipeFakultas}, &prodi.ID)
	require.Error(t, err)
	assert.Equal(t, "parent_id", fieldOf(t, err))

	err = v.ValidateParent(ctx, models.Unit{ID: primitive.NewObjectID(), Tipe: models.TipeProdi}, &prodi.ID)
	assert.Error(t, err, "same rank rejected")
}

func TestValidateParent_StrictCycle(t *testing.T) {
	// Chain built permissively with mismatched tipes: a(unit) -> b(prodi) -> c(unit).
	units := memUnits{}
	a := units.add(models.TipeUnit, nil)
	b := units.add(models.TipeProdi, &a)
	c := units.add(models.TipeUnit, &b)
	_ = c

	// Retyping a to fakultas and parenting it under b would close a loop.
	a.Tipe = models.TipeFakultas
	units[a.ID] = a
	b.Tipe = models.TipeUniversitas
	units[b.ID] = b

	v := hierarchy.Validator{Strict: true, Lookup: units}
	err := v.ValidateParent(context.Background(), a, &b.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sub-units")
}

func TestValidateParent_StrictDepthBound(t *testing.T) {
	units := memUnits{}
	root := units.add(models.TipeUniversitas, nil)
	cur := root
	for i := 0; i < hierarchy.MaxDepth+2; i++ {
		cur = units.add(models.TipeUniversitas, &cur)
	}
	// Close the chain into a loop so only the depth bound can stop the walk.
	r := units[root.ID]
	r.ParentID = &cur.ID
	units[root.ID] = r

	v := hierarchy.Validator{Strict: true, Lookup: units}
	child := models.Unit{ID: primitive.NewObjectID(), Tipe: models.TipeFakultas}
	err := v.ValidateParent(context.Background(), child, &cur.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too deep")
}

func TestValidateChildren(t *testing.T) {
	units := memUnits{}
	ft := units.add(models.TipeFakultas, nil)
	prodi := units.add(models.TipeProdi, &ft)
	kids := []models.Unit{prodi}

	strict := hierarchy.Validator{Strict: true, Lookup: units}
	assert.NoError(t, strict.ValidateChildren(ft, kids))
	assert.NoError(t, strict.ValidateChildren(ft, nil))

	demoted := ft
	demoted.Tipe = models.TipeProdi
	err := strict.ValidateChildren(demoted, kids)
	require.Error(t, err)
	assert.Equal(t, "tipe", fieldOf(t, err))

	demoted.Tipe = models.TipeUnit
	assert.Error(t, strict.ValidateChildren(demoted, kids))

	loose := hierarchy.Validator{Lookup: units}
	assert.NoError(t, loose.ValidateChildren(demoted, kids))
}

func TestValidateLeader(t *testing.T) {
	units := memUnits{}
	univ := units.add(models.TipeUniversitas, nil)
	fak := units.add(models.TipeFakultas, &univ)
	prodi := units.add(models.TipeProdi, &fak)
	otherFak := units.add(models.TipeFakultas, &univ)

	ctx := context.Background()
	strict := hierarchy.Validator{Strict: true, Lookup: units}
	loose := hierarchy.Validator{Lookup: units}

	inProdi := &models.Dosen{ID: primitive.NewObjectID(), UnitID: &prodi.ID}
	elsewhere := &models.Dosen{ID: primitive.NewObjectID(), UnitID: &otherFak.ID}
	homeless := &models.Dosen{ID: primitive.NewObjectID()}

	assert.NoError(t, strict.ValidateLeader(ctx, fak, inProdi), "subtree member")
	assert.NoError(t, strict.ValidateLeader(ctx, prodi, inProdi), "own unit")
	assert.NoError(t, strict.ValidateLeader(ctx, fak, homeless))
	assert.NoError(t, strict.ValidateLeader(ctx, fak, nil))

	err := strict.ValidateLeader(ctx, fak, elsewhere)
	require.Error(t, err)
	assert.Equal(t, "leader_id", fieldOf(t, err))

	assert.NoError(t, loose.ValidateLeader(ctx, fak, elsewhere))
}
