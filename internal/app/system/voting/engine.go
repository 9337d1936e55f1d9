// internal/app/system/voting/engine.go

// Package voting implements the vote-casting engine: the one path that
// records votes and the owner of the single-vote-per-user invariant.
package voting

import (
	"context"
	"errors"

	pollstore "github.com/dalemusser/pollhub/internal/app/store/polls"
	votestore "github.com/dalemusser/pollhub/internal/app/store/votes"
	"github.com/dalemusser/pollhub/internal/app/system/pollview"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// ErrPollNotFound: the referenced poll does not exist.
	ErrPollNotFound = errors.New("poll not found")
	// ErrInvalidOption: the option does not belong to the referenced poll.
	ErrInvalidOption = errors.New("option does not belong to this poll")
	// ErrAlreadyVoted: a vote already exists for this (poll, user) pair.
	ErrAlreadyVoted = errors.New("user has already voted in this poll")
)

// Engine coordinates the precondition checks and the vote insert.
//
// The HasVoted pre-check only exists to give the common case a friendly
// answer without an insert attempt; correctness under concurrency comes
// from the unique (poll_id, user_id) index, whose duplicate-key error is
// mapped to the same ErrAlreadyVoted outcome. Two concurrent casts for
// one (poll, user) therefore yield exactly one vote.
type Engine struct {
	polls *pollstore.Store
	votes *votestore.Store
	log   *zap.Logger
}

// NewEngine constructs a voting Engine over the given database.
func NewEngine(db *mongo.Database, log *zap.Logger) *Engine {
	return &Engine{
		polls: pollstore.New(db),
		votes: votestore.New(db),
		log:   log,
	}
}

// CastVote records one vote and returns the post-vote snapshot with the
// caller's choice visible. Checks run in order, each with its own
// outcome: poll exists, option belongs to poll, user has not voted.
func (e *Engine) CastVote(ctx context.Context, pollID, userID, optionID primitive.ObjectID) (pollview.Snapshot, error) {
	p, err := e.polls.GetByID(ctx, pollID)
	if err != nil {
		if err == pollstore.ErrNotFound {
			return pollview.Snapshot{}, ErrPollNotFound
		}
		return pollview.Snapshot{}, err
	}

	if !p.HasOption(optionID) {
		return pollview.Snapshot{}, ErrInvalidOption
	}

	voted, err := e.votes.HasVoted(ctx, pollID, userID)
	if err != nil {
		return pollview.Snapshot{}, err
	}
	if voted {
		return pollview.Snapshot{}, ErrAlreadyVoted
	}

	if err := e.votes.Insert(ctx, pollID, optionID, userID); err != nil {
		if err == votestore.ErrDuplicateVote {
			// Lost a race with a concurrent cast by the same user; the
			// unique index kept the invariant.
			e.log.Debug("duplicate vote blocked by index",
				zap.String("poll_id", pollID.Hex()),
				zap.String("user_id", userID.Hex()))
			return pollview.Snapshot{}, ErrAlreadyVoted
		}
		return pollview.Snapshot{}, err
	}

	pw, err := e.polls.GetWithCounts(ctx, pollID, &userID)
	if err != nil {
		return pollview.Snapshot{}, err
	}
	return pollview.Build(pw), nil
}
