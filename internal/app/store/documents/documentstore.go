// internal/app/store/documents/documentstore.go
package documentstore

import (
	"context"
	"errors"
	"path"
	"time"

	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("document not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("documents")}
}

// NewStorageKey returns the external storage key for a new document of
// the given kategori, e.g. "kebijakan/6f1c...".
func NewStorageKey(kategori string) string {
	return path.Join(kategori, uuid.NewString())
}

// Create inserts d with a fresh storage key.
func (s *Store) Create(ctx context.Context, d models.Document) (models.Document, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.JudulCI = text.Fold(d.Judul)
	d.StorageKey = NewStorageKey(d.Kategori)
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Document{}, err
	}
	return d, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	var d models.Document
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Document{}, ErrNotFound
	}
	if err != nil {
		return models.Document{}, err
	}
	return d, nil
}

// Update replaces the metadata of document id. The storage key never changes.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, d models.Document) error {
	set := bson.M{
		"judul":      d.Judul,
		"judul_ci":   text.Fold(d.Judul),
		"kategori":   d.Kategori,
		"deskripsi":  d.Deskripsi,
		"url":        d.URL,
		"updated_at": time.Now().UTC(),
	}
	unset := bson.M{}
	if d.UnitID != nil {
		set["unit_id"] = *d.UnitID
	} else {
		unset["unit_id"] = ""
	}
	if d.PeriodeID != nil {
		set["periode_id"] = *d.PeriodeID
	} else {
		unset["periode_id"] = ""
	}
	upd := bson.M{"$set": set}
	if len(unset) > 0 {
		upd["$unset"] = unset
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

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Find returns documents matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Document, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Document{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of documents matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
