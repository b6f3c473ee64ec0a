// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateLogin = errors.New("a user with this login id already exists")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByLoginID looks a user up by case-folded login id.
func (s *Store) GetByLoginID(ctx context.Context, loginID string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"login_id_ci": text.Fold(loginID)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Create inserts u. PasswordHash must already be hashed.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.FullNameCI = text.Fold(u.FullName)
	u.LoginIDCI = text.Fold(u.LoginID)
	u.Role = authz.NormalizeRole(u.Role)
	if u.Status == "" {
		u.Status = StatusActive
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateLogin
		}
		return models.User{}, err
	}
	return u, nil
}

// EnsureSuperAdmin creates the login as an active superadmin, or promotes
// and re-enables an existing one. An empty passwordHash leaves an existing
// password untouched. It reports whether a new user was created.
func (s *Store) EnsureSuperAdmin(ctx context.Context, loginID, fullName, passwordHash string) (bool, error) {
	now := time.Now().UTC()
	set := bson.M{
		"role":       authz.RoleSuperAdmin,
		"status":     StatusActive,
		"updated_at": now,
	}
	if passwordHash != "" {
		set["password_hash"] = passwordHash
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"login_id_ci": text.Fold(loginID)},
		bson.M{
			"$set": set,
			"$setOnInsert": bson.M{
				"_id":          primitive.NewObjectID(),
				"login_id":     loginID,
				"login_id_ci":  text.Fold(loginID),
				"full_name":    fullName,
				"full_name_ci": text.Fold(fullName),
				"created_at":   now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}
