package standarstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mutuhub/internal/app/system/ordering"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PertanyaanOrdering orders pertanyaan within an indikator.
func (s *Store) PertanyaanOrdering() ordering.Engine {
	return ordering.Engine{Coll: s.pertanyaan, ParentField: "indikator_id"}
}

// CreatePertanyaan inserts p. A zero Order is replaced by max+1.
func (s *Store) CreatePertanyaan(ctx context.Context, p models.Pertanyaan) (models.Pertanyaan, error) {
	if p.Order <= 0 {
		next, err := s.PertanyaanOrdering().NextOrder(ctx, p.IndikatorID)
		if err != nil {
			return models.Pertanyaan{}, err
		}
		p.Order = next
	}
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.pertanyaan.InsertOne(ctx, p); err != nil {
		return models.Pertanyaan{}, err
	}
	return p, nil
}

// GetPertanyaan loads pertanyaan id only when it belongs to indikatorID.
func (s *Store) GetPertanyaan(ctx context.Context, indikatorID, id primitive.ObjectID) (models.Pertanyaan, error) {
	var p models.Pertanyaan
	err := s.pertanyaan.FindOne(ctx, bson.M{"_id": id, "indikator_id": indikatorID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Pertanyaan{}, ErrPertanyaanMissing
	}
	if err != nil {
		return models.Pertanyaan{}, err
	}
	return p, nil
}

// ListPertanyaan returns an indikator's pertanyaan in display order.
func (s *Store) ListPertanyaan(ctx context.Context, indikatorID primitive.ObjectID) ([]models.Pertanyaan, error) {
	cur, err := s.pertanyaan.Find(ctx, bson.M{"indikator_id": indikatorID},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Pertanyaan{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePertanyaan replaces the text; Order changes only when positive.
func (s *Store) UpdatePertanyaan(ctx context.Context, indikatorID, id primitive.ObjectID, p models.Pertanyaan) error {
	set := bson.M{"teks": p.Teks, "updated_at": time.Now().UTC()}
	if p.Order > 0 {
		set["order"] = p.Order
	}
	res, err := s.pertanyaan.UpdateOne(ctx, bson.M{"_id": id, "indikator_id": indikatorID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPertanyaanMissing
	}
	return nil
}

// DeletePertanyaan removes pertanyaan id within indikatorID.
func (s *Store) DeletePertanyaan(ctx context.Context, indikatorID, id primitive.ObjectID) error {
	res, err := s.pertanyaan.DeleteOne(ctx, bson.M{"_id": id, "indikator_id": indikatorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPertanyaanMissing
	}
	return nil
}
