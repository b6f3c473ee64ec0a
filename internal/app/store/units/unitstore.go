// internal/app/store/units/unitstore.go
package unitstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mutuhub/internal/app/system/hierarchy"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("unit not found")
	ErrDuplicateKode = errors.New("a unit with this kode already exists")
	ErrHasChildren   = errors.New("unit still has sub-units")
	ErrHasDosen      = errors.New("unit still has dosen assigned")
)

type Store struct {
	c     *mongo.Collection
	dosen *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("units"),
		dosen: db.Collection("dosen"),
	}
}

// Create inserts u, keeping u.ID when the caller chose it up front.
func (s *Store) Create(ctx context.Context, u models.Unit) (models.Unit, error) {
	now := time.Now().UTC()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.KodeCI = text.Fold(u.Kode)
	u.NamaCI = text.Fold(u.Nama)
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Unit{}, ErrDuplicateKode
		}
		return models.Unit{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Unit, error) {
	var u models.Unit
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Unit{}, ErrNotFound
	}
	if err != nil {
		return models.Unit{}, err
	}
	return u, nil
}

// Unit implements hierarchy.Lookup.
func (s *Store) Unit(ctx context.Context, id primitive.ObjectID) (models.Unit, error) {
	u, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return models.Unit{}, hierarchy.ErrUnitNotFound
	}
	return u, err
}

// Update replaces the mutable fields of unit id. A nil ParentID or
// LeaderID clears the link.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, u models.Unit) error {
	set := bson.M{
		"kode":           u.Kode,
		"kode_ci":        text.Fold(u.Kode),
		"nama":           u.Nama,
		"nama_ci":        text.Fold(u.Nama),
		"tipe":           u.Tipe,
		"leader_nama":    u.LeaderNama,
		"leader_jabatan": u.LeaderJabatan,
		"status":         u.Status,
		"updated_at":     time.Now().UTC(),
	}
	unset := bson.M{}
	if u.ParentID != nil {
		set["parent_id"] = *u.ParentID
	} else {
		unset["parent_id"] = ""
	}
	if u.LeaderID != nil {
		set["leader_id"] = *u.LeaderID
	} else {
		unset["leader_id"] = ""
	}

	upd := bson.M{"$set": set}
	if len(unset) > 0 {
		upd["$unset"] = unset
	}
	res, err := s.c.UpdateByID(ctx, id, upd)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateKode
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes unit id. It refuses while sub-units or dosen still
// reference the unit.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if n, err := s.c.CountDocuments(ctx, bson.M{"parent_id": id}, options.Count().SetLimit(1)); err != nil {
		return err
	} else if n > 0 {
		return ErrHasChildren
	}
	if n, err := s.dosen.CountDocuments(ctx, bson.M{"unit_id": id}, options.Count().SetLimit(1)); err != nil {
		return err
	} else if n > 0 {
		return ErrHasDosen
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

// Children lists the direct sub-units of id by name.
func (s *Store) Children(ctx context.Context, id primitive.ObjectID) ([]models.Unit, error) {
	return s.Find(ctx, bson.M{"parent_id": id},
		options.Find().SetSort(bson.D{{Key: "nama_ci", Value: 1}, {Key: "_id", Value: 1}}))
}

// LeadingCount counts units naming dosenID as leader.
func (s *Store) LeadingCount(ctx context.Context, dosenID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"leader_id": dosenID})
}

// Find returns units matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Unit, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	units := []models.Unit{}
	if err := cur.All(ctx, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// Count returns the number of units matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
