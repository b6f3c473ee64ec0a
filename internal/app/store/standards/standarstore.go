// internal/app/store/standards/standarstore.go
package standarstore

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
	ErrNotFound          = errors.New("standar mutu not found")
	ErrIndikatorNotFound = errors.New("indikator not found")
	ErrPertanyaanMissing = errors.New("pertanyaan not found")
	ErrDuplicateKode     = errors.New("a standar mutu with this kode already exists")
)

// Store covers standar_mutu and the indikator and pertanyaan it owns.
type Store struct {
	standar    *mongo.Collection
	indikator  *mongo.Collection
	pertanyaan *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		standar:    db.Collection("standar_mutu"),
		indikator:  db.Collection("indikator"),
		pertanyaan: db.Collection("pertanyaan"),
	}
}

func (s *Store) Create(ctx context.Context, sm models.StandarMutu) (models.StandarMutu, error) {
	now := time.Now().UTC()
	sm.ID = primitive.NewObjectID()
	sm.KodeCI = text.Fold(sm.Kode)
	sm.NamaCI = text.Fold(sm.Nama)
	sm.CreatedAt = now
	sm.UpdatedAt = now
	if _, err := s.standar.InsertOne(ctx, sm); err != nil {
		if wafflemongo.IsDup(err) {
			return models.StandarMutu{}, ErrDuplicateKode
		}
		return models.StandarMutu{}, err
	}
	return sm, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.StandarMutu, error) {
	var sm models.StandarMutu
	err := s.standar.FindOne(ctx, bson.M{"_id": id}).Decode(&sm)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.StandarMutu{}, ErrNotFound
	}
	if err != nil {
		return models.StandarMutu{}, err
	}
	return sm, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, sm models.StandarMutu) error {
	res, err := s.standar.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"kode":       sm.Kode,
		"kode_ci":    text.Fold(sm.Kode),
		"nama":       sm.Nama,
		"nama_ci":    text.Fold(sm.Nama),
		"deskripsi":  sm.Deskripsi,
		"status":     sm.Status,
		"updated_at": time.Now().UTC(),
	}})
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

// DeleteCascade removes the standar with its indikator and their
// pertanyaan. Run it inside txn.Run.
func (s *Store) DeleteCascade(ctx context.Context, id primitive.ObjectID) error {
	indIDs, err := s.indikatorIDs(ctx, bson.M{"standar_id": id})
	if err != nil {
		return err
	}
	if len(indIDs) > 0 {
		if _, err := s.pertanyaan.DeleteMany(ctx, bson.M{"indikator_id": bson.M{"$in": indIDs}}); err != nil {
			return err
		}
		if _, err := s.indikator.DeleteMany(ctx, bson.M{"standar_id": id}); err != nil {
			return err
		}
	}
	res, err := s.standar.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Find returns standar mutu matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.StandarMutu, error) {
	cur, err := s.standar.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.StandarMutu{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of standar mutu matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.standar.CountDocuments(ctx, filter)
}

func (s *Store) indikatorIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	cur, err := s.indikator.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		ids = append(ids, row.ID)
	}
	return ids, cur.Err()
}
