// internal/app/store/periodes/periodestore.go
package periodestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mutuhub/internal/app/system/txn"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("periode not found")
	ErrDuplicateKode = errors.New("a periode with this kode already exists")
	ErrInUse         = errors.New("periode is still referenced by surveys")
	// ErrActiveConflict means a concurrent activation won the race.
	ErrActiveConflict = errors.New("another periode was activated concurrently")
)

type Store struct {
	db      *mongo.Database
	c       *mongo.Collection
	surveys *mongo.Collection
	log     *zap.Logger
}

func New(db *mongo.Database, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		db:      db,
		c:       db.Collection("periodes"),
		surveys: db.Collection("surveys"),
		log:     log,
	}
}

// activate flips the single active flag to id. It must run inside txn.Run.
// Others are cleared first so the partial unique index on is_active never
// sees two active rows.
func (s *Store) activate(ctx context.Context, id primitive.ObjectID) error {
	if n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1)); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}

	now := time.Now().UTC()
	if _, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$ne": id}, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": now}},
	); err != nil {
		return err
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": true, "updated_at": now}},
	)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrActiveConflict
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive makes id the only active periode. Calling it for the periode
// that is already active changes nothing else.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID) error {
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		return s.activate(ctx, id)
	})
}

// Active returns the active periode or ErrNotFound.
func (s *Store) Active(ctx context.Context) (models.Periode, error) {
	var p models.Periode
	err := s.c.FindOne(ctx, bson.M{"is_active": true}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Periode{}, ErrNotFound
	}
	if err != nil {
		return models.Periode{}, err
	}
	return p, nil
}

// Create inserts p. When p.IsActive is set the insert and the flip run in
// one transaction.
func (s *Store) Create(ctx context.Context, p models.Periode) (models.Periode, error) {
	now := time.Now().UTC()
	wantActive := p.IsActive
	p.ID = primitive.NewObjectID()
	p.KodeCI = text.Fold(p.Kode)
	p.IsActive = false
	p.CreatedAt = now
	p.UpdatedAt = now

	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if _, err := s.c.InsertOne(ctx, p); err != nil {
			if wafflemongo.IsDup(err) {
				return ErrDuplicateKode
			}
			return err
		}
		if wantActive {
			return s.activate(ctx, p.ID)
		}
		return nil
	})
	if err != nil {
		return models.Periode{}, err
	}
	p.IsActive = wantActive
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Periode, error) {
	var p models.Periode
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Periode{}, ErrNotFound
	}
	if err != nil {
		return models.Periode{}, err
	}
	return p, nil
}

// Update replaces the mutable fields of periode id. p.IsActive is ignored:
// a nil active leaves the flag as stored, true routes through the same flip
// as SetActive and false simply clears it.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.Periode, active *bool) error {
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		set := bson.M{
			"kode":       p.Kode,
			"kode_ci":    text.Fold(p.Kode),
			"nama":       p.Nama,
			"mulai":      p.Mulai,
			"selesai":    p.Selesai,
			"status":     p.Status,
			"updated_at": time.Now().UTC(),
		}
		if active != nil && !*active {
			set["is_active"] = false
		}
		res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			if wafflemongo.IsDup(err) {
				return ErrDuplicateKode
			}
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		if active != nil && *active {
			return s.activate(ctx, id)
		}
		return nil
	})
}

// Delete removes periode id unless surveys still reference it. Deleting
// the active periode leaves no periode active.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	n, err := s.surveys.CountDocuments(ctx, bson.M{"periode_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrInUse
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

// Find returns periodes matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Periode, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Periode{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of periodes matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
