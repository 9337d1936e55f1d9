// internal/domain/models/poll.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Poll is a question with 2–5 options, owned by exactly one creator.
//
// Options are embedded in the poll document so a poll and its options are
// written as one atomic insert; the slice order is insertion order and is
// significant for display. Polls are immutable once created — vote counts
// are never stored here, they are derived from the votes collection on
// every read.
//
// CreatorName is the creator's username denormalized at creation time.
// Usernames never change after registration, so the copy cannot go stale.
type Poll struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatorName string             `bson:"creator_name" json:"creator_name"`
	Options     []Option           `bson:"options" json:"options"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Option is one selectable choice within a poll. It is owned exclusively
// by its poll; the ObjectID is generated at poll creation so option IDs
// are globally unique across polls.
type Option struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Text string             `bson:"text" json:"text"`
}

// HasOption reports whether id is one of the poll's own options.
func (p *Poll) HasOption(id primitive.ObjectID) bool {
	for _, o := range p.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Poll size bounds enforced at creation.
const (
	MinPollOptions = 2
	MaxPollOptions = 5
	MinTitleLen    = 5
)
