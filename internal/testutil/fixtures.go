// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/pollhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given username/email and password.
// The hash uses bcrypt's minimum cost to keep tests fast.
func (f *Fixtures) CreateUser(ctx context.Context, username, email, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   text.Fold(username),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return u
}

// CreatePoll inserts a poll owned by the given user with one embedded
// option per text, in order.
func (f *Fixtures) CreatePoll(ctx context.Context, creator models.User, title string, optionTexts ...string) models.Poll {
	f.t.Helper()

	opts := make([]models.Option, 0, len(optionTexts))
	for _, text := range optionTexts {
		opts = append(opts, models.Option{
			ID:   primitive.NewObjectID(),
			Text: text,
		})
	}

	p := models.Poll{
		ID:          primitive.NewObjectID(),
		Title:       title,
		CreatedBy:   creator.ID,
		CreatorName: creator.Username,
		Options:     opts,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("polls").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test poll: %v", err)
	}

	return p
}

// CreateVote inserts a vote directly, bypassing the engine's checks.
func (f *Fixtures) CreateVote(ctx context.Context, poll models.Poll, optionID, userID primitive.ObjectID) models.Vote {
	f.t.Helper()

	v := models.Vote{
		ID:        primitive.NewObjectID(),
		PollID:    poll.ID,
		OptionID:  optionID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("votes").InsertOne(ctx, v); err != nil {
		f.t.Fatalf("failed to create test vote: %v", err)
	}

	return v
}
