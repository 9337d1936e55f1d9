package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/pollhub/internal/app/store/users"
	"github.com/dalemusser/pollhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "alice", "Alice@Example.com", "secret123")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "alice@example.com" {
		t.Errorf("email: got %q, want normalized %q", created.Email, "alice@example.com")
	}
	if created.UsernameCI == "" {
		t.Error("expected UsernameCI to be set")
	}
	if created.PasswordHash == "" || created.PasswordHash == "secret123" {
		t.Error("expected password to be hashed")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same email, different case and username.
	_, err := store.Create(ctx, "alice2", "ALICE@example.com", "secret123")
	if !errors.Is(err, userstore.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestStore_Create_DuplicateUsernameCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, "ALICE", "other@example.com", "secret123")
	if !errors.Is(err, userstore.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Lookup normalizes, so mixed case finds the user.
	u, err := store.GetByEmail(ctx, "Alice@Example.COM")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if u.ID != created.ID {
		t.Errorf("ID: got %v, want %v", u.ID, created.ID)
	}

	_, err = store.GetByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_CheckPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !store.CheckPassword(&created, "secret123") {
		t.Error("expected correct password to verify")
	}
	if store.CheckPassword(&created, "wrong-password") {
		t.Error("expected wrong password to fail")
	}
}
