package surveypolicy_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/mutuhub/internal/app/policy/surveypolicy"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/dalemusser/mutuhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanModify(t *testing.T) {
	creator := primitive.NewObjectID()
	owned := models.Survey{CreatedBy: &creator}
	legacy := models.Survey{}

	admin := authz.Resolve(authz.RoleAdmin, nil)
	auditor := authz.Resolve(authz.RoleAuditor, nil)
	dosen := authz.Resolve(authz.RoleDosen, nil)

	tests := []struct {
		name   string
		p      authz.Principal
		userID string
		perm   authz.Permission
		sv     models.Survey
		want   bool
	}{
		{"admin any survey", admin, "x", authz.DeleteSurvey, owned, true},
		{"auditor own survey", auditor, creator.Hex(), authz.UpdateSurvey, owned, true},
		{"auditor foreign survey", auditor, primitive.NewObjectID().Hex(), authz.UpdateSurvey, owned, false},
		{"auditor legacy survey", auditor, "x", authz.UpdateSurvey, legacy, true},
		{"auditor lacks delete", auditor, creator.Hex(), authz.DeleteSurvey, owned, false},
		{"dosen read only", dosen, creator.Hex(), authz.UpdateSurvey, owned, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, surveypolicy.CanModify(tt.p, tt.userID, tt.perm, tt.sv))
		})
	}
}

func TestChain_CrossOwnerIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	chain := surveypolicy.NewChain(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateSurvey(ctx, "A")
	b := fx.CreateSurvey(ctx, "B")
	q := fx.CreateQuestion(ctx, a.ID, 1)
	qb := fx.CreateQuestion(ctx, b.ID, 1)
	o := fx.CreateOption(ctx, q.ID, 1)

	_, err := chain.Question(ctx, b.ID, q.ID)
	assert.True(t, errors.Is(err, surveypolicy.ErrNotFound))

	_, err = chain.Option(ctx, qb.ID, o.ID)
	assert.True(t, errors.Is(err, surveypolicy.ErrNotFound))

	_, err = chain.Survey(ctx, primitive.NewObjectID())
	assert.True(t, errors.Is(err, surveypolicy.ErrNotFound))

	got, err := chain.Question(ctx, a.ID, q.ID)
	assert.NoError(t, err)
	assert.Equal(t, q.ID, got.ID)
}
