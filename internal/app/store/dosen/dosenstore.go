// internal/app/store/dosen/dosenstore.go
package dosenstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mutuhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("dosen not found")
	ErrDuplicateNIDN = errors.New("a dosen with this NIDN already exists")
	ErrIsLeader      = errors.New("dosen is still named as a unit leader")
)

type Store struct {
	c     *mongo.Collection
	units *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("dosen"),
		units: db.Collection("units"),
	}
}

func (s *Store) Create(ctx context.Context, d models.Dosen) (models.Dosen, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.NamaCI = text.Fold(d.Nama)
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Dosen{}, ErrDuplicateNIDN
		}
		return models.Dosen{}, err
	}
	return d, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Dosen, error) {
	var d models.Dosen
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Dosen{}, ErrNotFound
	}
	if err != nil {
		return models.Dosen{}, err
	}
	return d, nil
}

// Update replaces the mutable fields of dosen id. A nil UnitID clears the
// home unit.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, d models.Dosen) error {
	upd := bson.M{"$set": bson.M{
		"nidn":       d.NIDN,
		"nama":       d.Nama,
		"nama_ci":    text.Fold(d.Nama),
		"email":      d.Email,
		"jabatan":    d.Jabatan,
		"status":     d.Status,
		"updated_at": time.Now().UTC(),
	}}
	if d.UnitID != nil {
		upd["$set"].(bson.M)["unit_id"] = *d.UnitID
	} else {
		upd["$unset"] = bson.M{"unit_id": ""}
	}

	res, err := s.c.UpdateByID(ctx, id, upd)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateNIDN
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes dosen id unless a unit still names them as leader.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	n, err := s.units.CountDocuments(ctx, bson.M{"leader_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrIsLeader
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Find returns dosen matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Dosen, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Dosen{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of dosen matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
