// internal/app/store/surveys/surveystore.go
package surveystore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("survey not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("surveys")}
}

func (s *Store) Create(ctx context.Context, sv models.Survey) (models.Survey, error) {
	now := time.Now().UTC()
	sv.ID = primitive.NewObjectID()
	sv.JudulCI = text.Fold(sv.Judul)
	sv.CreatedAt = now
	sv.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sv); err != nil {
		return models.Survey{}, err
	}
	return sv, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Survey, error) {
	var sv models.Survey
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Survey{}, ErrNotFound
	}
	if err != nil {
		return models.Survey{}, err
	}
	return sv, nil
}

// Update replaces the mutable fields of survey id.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, sv models.Survey) error {
	set := bson.M{
		"judul":      sv.Judul,
		"judul_ci":   text.Fold(sv.Judul),
		"deskripsi":  sv.Deskripsi,
		"starts_at":  sv.StartsAt,
		"ends_at":    sv.EndsAt,
		"status":     sv.Status,
		"updated_at": time.Now().UTC(),
	}
	upd := bson.M{"$set": set}
	if sv.PeriodeID != nil {
		set["periode_id"] = *sv.PeriodeID
	} else {
		upd["$unset"] = bson.M{"periode_id": ""}
	}
	res, err := s.c.UpdateByID(ctx, id, upd)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the survey row only; callers remove questions and options.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns surveys matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Survey, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Survey{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of surveys matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
