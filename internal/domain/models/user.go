// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. Users are referenced (never owned) by
// polls and votes via their ObjectID.
//
// Username and email are unique; UsernameCI is the case/diacritics-folded
// shadow field backing the case-insensitive uniqueness index.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	UsernameCI string             `bson:"username_ci" json:"-"`
	Email      string             `bson:"email" json:"email"`

	// bcrypt hash; never serialized to clients.
	PasswordHash string `bson:"password_hash" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
