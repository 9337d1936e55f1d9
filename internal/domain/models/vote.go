// internal/domain/models/vote.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vote binds one user to one option within one poll. Votes are immutable
// and never updated or deleted.
//
// The votes collection carries a unique index on (poll_id, user_id); that
// index — not any application-level check — is what guarantees at most one
// vote per user per poll under concurrent requests.
type Vote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PollID    primitive.ObjectID `bson:"poll_id" json:"poll_id"`
	OptionID  primitive.ObjectID `bson:"option_id" json:"option_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
