// internal/app/store/votes/votestore.go
package votestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/pollhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("votes")}
}

// ErrDuplicateVote is returned when a vote already exists for the
// (poll, user) pair. It is produced by the unique index on
// (poll_id, user_id), so it holds under concurrent inserts — two racing
// casts get exactly one success and one ErrDuplicateVote.
var ErrDuplicateVote = errors.New("user has already voted in this poll")

// Insert records a vote. The caller is responsible for verifying that
// optionID belongs to pollID before calling.
func (s *Store) Insert(ctx context.Context, pollID, optionID, userID primitive.ObjectID) error {
	v := models.Vote{
		ID:        primitive.NewObjectID(),
		PollID:    pollID,
		OptionID:  optionID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, v); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateVote
		}
		return err
	}
	return nil
}

// HasVoted reports whether a vote exists for the (poll, user) pair.
func (s *Store) HasVoted(ctx context.Context, pollID, userID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"poll_id": pollID, "user_id": userID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountForPoll returns the total number of votes cast in a poll.
func (s *Store) CountForPoll(ctx context.Context, pollID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"poll_id": pollID})
}
