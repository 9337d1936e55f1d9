package voting_test

import (
	"errors"
	"sync"
	"testing"

	votestore "github.com/dalemusser/pollhub/internal/app/store/votes"
	"github.com/dalemusser/pollhub/internal/app/system/voting"
	"github.com/dalemusser/pollhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestEngine_CastVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := voting.NewEngine(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "alice", "alice@example.com", "secret123")
	bob := fixtures.CreateUser(ctx, "bob", "bob@example.com", "secret123")
	p := fixtures.CreatePoll(ctx, alice, "Best programming language?", "Go", "Rust")

	snap, err := engine.CastVote(ctx, p.ID, bob.ID, p.Options[0].ID)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	if snap.TotalVotes != 1 {
		t.Errorf("totalVotes: got %d, want 1", snap.TotalVotes)
	}
	if snap.Options[0].Votes != 1 {
		t.Errorf("option 0 votes: got %d, want 1", snap.Options[0].Votes)
	}
	if snap.Options[1].Votes != 0 {
		t.Errorf("option 1 votes: got %d, want 0", snap.Options[1].Votes)
	}

	// The caster sees their own choice in the post-vote snapshot.
	if snap.UserVoted == nil {
		t.Fatal("expected userVoted in post-vote snapshot")
	}
	if *snap.UserVoted != p.Options[0].ID {
		t.Errorf("userVoted: got %v, want %v", *snap.UserVoted, p.Options[0].ID)
	}
}

func TestEngine_CastVote_PollNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := voting.NewEngine(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "alice", "alice@example.com", "secret123")

	_, err := engine.CastVote(ctx, primitive.NewObjectID(), alice.ID, primitive.NewObjectID())
	if !errors.Is(err, voting.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound, got %v", err)
	}
}

func TestEngine_CastVote_InvalidOption(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := voting.NewEngine(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "alice", "alice@example.com", "secret123")
	p := fixtures.CreatePoll(ctx, alice, "Best programming language?", "Go", "Rust")
	other := fixtures.CreatePoll(ctx, alice, "Tabs or spaces then?", "Tabs", "Spaces")

	// An option from a different poll must not pass the membership check,
	// even though it is a real option ID.
	_, err := engine.CastVote(ctx, p.ID, alice.ID, other.Options[0].ID)
	if !errors.Is(err, voting.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}

	_, err = engine.CastVote(ctx, p.ID, alice.ID, primitive.NewObjectID())
	if !errors.Is(err, voting.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption for unknown option, got %v", err)
	}

	// Failed casts record nothing.
	n, err := votestore.New(db).CountForPoll(ctx, p.ID)
	if err != nil {
		t.Fatalf("CountForPoll failed: %v", err)
	}
	if n != 0 {
		t.Errorf("votes after rejected casts: got %d, want 0", n)
	}
}

func TestEngine_CastVote_AlreadyVoted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := voting.NewEngine(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "alice", "alice@example.com", "secret123")
	p := fixtures.CreatePoll(ctx, alice, "Best programming language?", "Go", "Rust")

	if _, err := engine.CastVote(ctx, p.ID, alice.ID, p.Options[0].ID); err != nil {
		t.Fatalf("first CastVote failed: %v", err)
	}

	// Changing the option does not help; the vote is per poll.
	_, err := engine.CastVote(ctx, p.ID, alice.ID, p.Options[1].ID)
	if !errors.Is(err, voting.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	n, err := votestore.New(db).CountForPoll(ctx, p.ID)
	if err != nil {
		t.Fatalf("CountForPoll failed: %v", err)
	}
	if n != 1 {
		t.Errorf("votes: got %d, want 1", n)
	}
}

func TestEngine_CastVote_ConcurrentDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := voting.NewEngine(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "alice", "alice@example.com", "secret123")
	bob := fixtures.CreateUser(ctx, "bob", "bob@example.com", "secret123")
	p := fixtures.CreatePoll(ctx, alice, "Best programming language?", "Go", "Rust")

	// Two concurrent casts by the same user: exactly one may win.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.CastVote(ctx, p.ID, bob.ID, p.Options[i].ID)
		}(i)
	}
	wg.Wait()

	var wins, dups int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, voting.ErrAlreadyVoted):
			dups++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || dups != 1 {
		t.Fatalf("got %d wins and %d duplicates, want exactly 1 of each", wins, dups)
	}

	n, err := votestore.New(db).CountForPoll(ctx, p.ID)
	if err != nil {
		t.Fatalf("CountForPoll failed: %v", err)
	}
	if n != 1 {
		t.Errorf("stored votes: got %d, want 1", n)
	}
}
