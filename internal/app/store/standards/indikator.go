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

// IndikatorOrdering orders indikator within a standar.
func (s *Store) IndikatorOrdering() ordering.Engine {
	return ordering.Engine{Coll: s.indikator, ParentField: "standar_id"}
}

// CreateIndikator inserts ind. A zero Order is replaced by max+1.
func (s *Store) CreateIndikator(ctx context.Context, ind models.Indikator) (models.Indikator, error) {
	if ind.Order <= 0 {
		next, err := s.IndikatorOrdering().NextOrder(ctx, ind.StandarID)
		if err != nil {
			return models.Indikator{}, err
		}
		ind.Order = next
	}
	now := time.Now().UTC()
	ind.ID = primitive.NewObjectID()
	ind.CreatedAt = now
	ind.UpdatedAt = now
	if _, err := s.indikator.InsertOne(ctx, ind); err != nil {
		return models.Indikator{}, err
	}
	return ind, nil
}

// GetIndikator loads indikator id only when it belongs to standarID.
func (s *Store) GetIndikator(ctx context.Context, standarID, id primitive.ObjectID) (models.Indikator, error) {
	var ind models.Indikator
	err := s.indikator.FindOne(ctx, bson.M{"_id": id, "standar_id": standarID}).Decode(&ind)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Indikator{}, ErrIndikatorNotFound
	}
	if err != nil {
		return models.Indikator{}, err
	}
	return ind, nil
}

// ListIndikator returns a standar's indikator in display order.
func (s *Store) ListIndikator(ctx context.Context, standarID primitive.ObjectID) ([]models.Indikator, error) {
	cur, err := s.indikator.Find(ctx, bson.M{"standar_id": standarID},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Indikator{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateIndikator replaces the text fields; Order changes only when positive.
func (s *Store) UpdateIndikator(ctx context.Context, standarID, id primitive.ObjectID, ind models.Indikator) error {
	set := bson.M{
		"kode":       ind.Kode,
		"deskripsi":  ind.Deskripsi,
		"target":     ind.Target,
		"updated_at": time.Now().UTC(),
	}
	if ind.Order > 0 {
		set["order"] = ind.Order
	}
	res, err := s.indikator.UpdateOne(ctx, bson.M{"_id": id, "standar_id": standarID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrIndikatorNotFound
	}
	return nil
}

// DeleteIndikator removes indikator id within standarID and its
// pertanyaan. Run it inside txn.Run.
func (s *Store) DeleteIndikator(ctx context.Context, standarID, id primitive.ObjectID) error {
	res, err := s.indikator.DeleteOne(ctx, bson.M{"_id": id, "standar_id": standarID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrIndikatorNotFound
	}
	_, err = s.pertanyaan.DeleteMany(ctx, bson.M{"indikator_id": id})
	return err
}
