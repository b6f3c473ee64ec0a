package questionstore_test

import (
	"errors"
	"testing"

	questionstore "github.com/dalemusser/mutuhub/internal/app/store/surveyquestions"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/dalemusser/mutuhub/internal/testutil"
)

func TestStore_NextOrderAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := questionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := fx.CreateSurvey(ctx, "S")
	for _, o := range []int{5, 1, 3} {
		fx.CreateQuestion(ctx, s.ID, o)
	}

	next, err := store.NextOrder(ctx, s.ID)
	if err != nil {
		t.Fatalf("NextOrder: %v", err)
	}
	if next != 6 {
		t.Errorf("NextOrder = %d, want 6", next)
	}

	q, err := store.Create(ctx, models.SurveyQuestion{SurveyID: s.ID, Pertanyaan: "Q", Tipe: models.QuestionTeks, Order: next})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := store.ListBySurvey(ctx, s.ID)
	if err != nil {
		t.Fatalf("ListBySurvey: %v", err)
	}
	var orders []int
	for _, row := range list {
		orders = append(orders, row.Order)
	}
	if len(orders) != 4 || orders[0] != 1 || orders[3] != 6 || list[3].ID != q.ID {
		t.Errorf("orders = %v", orders)
	}
}

func TestStore_OwnershipScoping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := questionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateSurvey(ctx, "Owner")
	other := fx.CreateSurvey(ctx, "Other")
	q := fx.CreateQuestion(ctx, owner.ID, 1)

	if _, err := store.GetInSurvey(ctx, other.ID, q.ID); !errors.Is(err, questionstore.ErrNotFound) {
		t.Errorf("GetInSurvey cross-owner: expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, other.ID, q.ID); !errors.Is(err, questionstore.ErrNotFound) {
		t.Errorf("Delete cross-owner: expected ErrNotFound, got %v", err)
	}
	if err := store.Update(ctx, other.ID, q.ID, q, false); !errors.Is(err, questionstore.ErrNotFound) {
		t.Errorf("Update cross-owner: expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetInSurvey(ctx, owner.ID, q.ID); err != nil {
		t.Errorf("question should still exist: %v", err)
	}
}

func TestStore_UpdateKeepsOrderUnlessAsked(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := questionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := fx.CreateSurvey(ctx, "S")
	q := fx.CreateQuestion(ctx, s.ID, 4)

	q.Pertanyaan = "Changed"
	q.Order = 99
	if err := store.Update(ctx, s.ID, q.ID, q, false); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.GetByID(ctx, q.ID)
	if got.Order != 4 || got.Pertanyaan != "Changed" {
		t.Errorf("got order %d text %q", got.Order, got.Pertanyaan)
	}

	if err := store.Update(ctx, s.ID, q.ID, q, true); err != nil {
		t.Fatalf("Update with order: %v", err)
	}
	got, _ = store.GetByID(ctx, q.ID)
	if got.Order != 99 {
		t.Errorf("order = %d, want 99", got.Order)
	}
}

func TestStore_DeleteBySurvey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := questionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := fx.CreateSurvey(ctx, "S")
	keep := fx.CreateSurvey(ctx, "Keep")
	fx.CreateQuestion(ctx, s.ID, 1)
	fx.CreateQuestion(ctx, s.ID, 2)
	fx.CreateQuestion(ctx, keep.ID, 1)

	ids, err := store.IDsBySurvey(ctx, s.ID)
	if err != nil || len(ids) != 2 {
		t.Fatalf("IDsBySurvey = %v, %v", ids, err)
	}
	n, err := store.DeleteBySurvey(ctx, s.ID)
	if err != nil || n != 2 {
		t.Fatalf("DeleteBySurvey n=%d err=%v", n, err)
	}
	rest, _ := store.ListBySurvey(ctx, keep.ID)
	if len(rest) != 1 {
		t.Errorf("other survey's questions touched: %d left", len(rest))
	}
}
