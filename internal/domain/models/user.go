// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that can sign in to the portal.
//
// NOTE:
//   - Role grants a base set of permissions; Permissions adds extra grants
//     on top of the role (never removes any).
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName     string              `bson:"full_name" json:"full_name"`
	FullNameCI   string              `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	LoginID      string              `bson:"login_id" json:"login_id"`
	LoginIDCI    string              `bson:"login_id_ci" json:"-"`
	PasswordHash string              `bson:"password_hash,omitempty" json:"-"`
	Role         string              `bson:"role" json:"role"` // superadmin | admin | auditor | dosen
	Permissions  []string            `bson:"permissions,omitempty" json:"permissions,omitempty"`
	Status       string              `bson:"status,omitempty" json:"status,omitempty"` // active | disabled
	UnitID       *primitive.ObjectID `bson:"unit_id,omitempty" json:"unit_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
