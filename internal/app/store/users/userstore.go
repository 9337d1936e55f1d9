// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/pollhub/internal/app/system/normalize"
	"github.com/dalemusser/pollhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

var (
	// ErrDuplicateUser is returned when the email or username is already taken.
	ErrDuplicateUser = errors.New("a user with this email or username already exists")

	errEmptyUsername = errors.New("username must not be empty")
	errEmptyEmail    = errors.New("email must not be empty")
	errEmptyPassword = errors.New("password must not be empty")
)

// Create inserts a new user after normalizing fields and hashing the
// password. Uniqueness of email and username is enforced by the unique
// indexes on the collection; a duplicate-key write surfaces as
// ErrDuplicateUser.
func (s *Store) Create(ctx context.Context, username, email, password string) (models.User, error) {
	username = normalize.Username(username)
	email = normalize.Email(email)

	if username == "" {
		return models.User{}, errEmptyUsername
	}
	if email == "" {
		return models.User{}, errEmptyEmail
	}
	if password == "" {
		return models.User{}, errEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, err
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

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CheckPassword compares a candidate password against the stored hash.
func (s *Store) CheckPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
