package userstore

import (
	"context"

	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/app/system/timeouts"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sessionFields are the only user fields a request needs.
var sessionFields = bson.M{
	"full_name": 1, "login_id": 1, "role": 1,
	"permissions": 1, "status": 1, "unit_id": 1,
}

// Fetcher adapts a Store to auth.UserFetcher. The user is reloaded on
// every request so a disabled account or a role change applies at once.
type Fetcher struct {
	store *Store
}

func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{store: New(db)}
}

// FetchUser returns nil for malformed ids, unknown or disabled users and
// lookup failures; the request then proceeds anonymously.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u models.User
	err = f.store.c.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(sessionFields)).Decode(&u)
	if err != nil || u.Status == StatusDisabled {
		return nil
	}
	return sessionUser(u)
}

func sessionUser(u models.User) *auth.SessionUser {
	su := &auth.SessionUser{
		ID:          u.ID.Hex(),
		Name:        u.FullName,
		LoginID:     u.LoginID,
		Role:        authz.NormalizeRole(u.Role),
		Permissions: u.Permissions,
	}
	if u.UnitID != nil {
		su.UnitID = u.UnitID.Hex()
	}
	return su
}
