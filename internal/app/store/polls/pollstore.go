// internal/app/store/polls/pollstore.go
package pollstore

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/dalemusser/pollhub/internal/app/system/normalize"
	"github.com/dalemusser/pollhub/internal/app/system/paging"
	"github.com/dalemusser/pollhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	polls *mongo.Collection
	votes *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		polls: db.Collection("polls"),
		votes: db.Collection("votes"),
	}
}

// ErrNotFound is returned when the referenced poll does not exist.
var ErrNotFound = errors.New("poll not found")

var (
	errTitleTooShort  = errors.New("title is too short")
	errOptionCount    = errors.New("polls must have between 2 and 5 options")
	errEmptyOption    = errors.New("option text must not be empty")
	errMissingCreator = errors.New("poll creator is required")
)

// Create validates and inserts a poll with its options as one document.
// The single insert is what makes poll creation atomic: either the poll
// and all its options become visible together, or nothing does.
//
// Option IDs are generated here, so they are globally unique and an
// option ID can never accidentally pass another poll's membership check.
func (s *Store) Create(ctx context.Context, creatorID primitive.ObjectID, creatorName, title string, optionTexts []string) (models.Poll, error) {
	if creatorID.IsZero() || creatorName == "" {
		return models.Poll{}, errMissingCreator
	}

	title = normalize.Text(title)
	if utf8.RuneCountInString(title) < models.MinTitleLen {
		return models.Poll{}, errTitleTooShort
	}
	if len(optionTexts) < models.MinPollOptions || len(optionTexts) > models.MaxPollOptions {
		return models.Poll{}, errOptionCount
	}

	opts := make([]models.Option, 0, len(optionTexts))
	for _, txt := range optionTexts {
		txt = normalize.Text(txt)
		if txt == "" {
			return models.Poll{}, errEmptyOption
		}
		opts = append(opts, models.Option{ID: primitive.NewObjectID(), Text: txt})
	}

	p := models.Poll{
		ID:          primitive.NewObjectID(),
		Title:       title,
		CreatedBy:   creatorID,
		CreatorName: creatorName,
		Options:     opts,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.polls.InsertOne(ctx, p); err != nil {
		return models.Poll{}, err
	}
	return p, nil
}

// GetByID loads a poll document. Returns ErrNotFound when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Poll, error) {
	var p models.Poll
	if err := s.polls.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Counts holds derived vote counts for one poll. Counts are computed from
// the votes collection on every read and are never stored on the poll.
type Counts struct {
	Total    int64
	ByOption map[primitive.ObjectID]int64
}

// PollWithCounts is the raw read-path shape: the poll document, its
// derived counts, and — when the viewer is authenticated — the option the
// viewer chose (nil if they have not voted).
type PollWithCounts struct {
	Poll         models.Poll
	Counts       Counts
	ViewerChoice *primitive.ObjectID
}

// GetWithCounts fetches one poll with vote counts and the viewer's own
// choice. viewerID may be nil for anonymous reads.
func (s *Store) GetWithCounts(ctx context.Context, id primitive.ObjectID, viewerID *primitive.ObjectID) (PollWithCounts, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return PollWithCounts{}, err
	}

	counts, err := s.countsForPolls(ctx, []primitive.ObjectID{p.ID})
	if err != nil {
		return PollWithCounts{}, err
	}

	pw := PollWithCounts{Poll: *p, Counts: counts[p.ID]}
	if pw.Counts.ByOption == nil {
		pw.Counts.ByOption = map[primitive.ObjectID]int64{}
	}

	if viewerID != nil {
		choices, err := s.choicesForViewer(ctx, []primitive.ObjectID{p.ID}, *viewerID)
		if err != nil {
			return PollWithCounts{}, err
		}
		if opt, ok := choices[p.ID]; ok {
			optCopy := opt
			pw.ViewerChoice = &optCopy
		}
	}
	return pw, nil
}

// List returns one page of polls newest-first, each with counts and the
// viewer's choice, plus the total poll count for pagination.
func (s *Store) List(ctx context.Context, page paging.Params, viewerID *primitive.ObjectID) ([]PollWithCounts, int64, error) {
	total, err := s.polls.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cur, err := s.polls.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var polls []models.Poll
	if err := cur.All(ctx, &polls); err != nil {
		return nil, 0, err
	}
	if len(polls) == 0 {
		return []PollWithCounts{}, total, nil
	}

	ids := make([]primitive.ObjectID, 0, len(polls))
	for _, p := range polls {
		ids = append(ids, p.ID)
	}

	counts, err := s.countsForPolls(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	var choices map[primitive.ObjectID]primitive.ObjectID
	if viewerID != nil {
		choices, err = s.choicesForViewer(ctx, ids, *viewerID)
		if err != nil {
			return nil, 0, err
		}
	}

	out := make([]PollWithCounts, 0, len(polls))
	for _, p := range polls {
		pw := PollWithCounts{Poll: p, Counts: counts[p.ID]}
		if pw.Counts.ByOption == nil {
			pw.Counts.ByOption = map[primitive.ObjectID]int64{}
		}
		if opt, ok := choices[p.ID]; ok {
			optCopy := opt
			pw.ViewerChoice = &optCopy
		}
		out = append(out, pw)
	}
	return out, total, nil
}

// countsForPolls aggregates vote counts for a batch of polls in one query:
// votes are grouped by (poll_id, option_id) and summed per poll.
func (s *Store) countsForPolls(ctx context.Context, pollIDs []primitive.ObjectID) (map[primitive.ObjectID]Counts, error) {
	result := make(map[primitive.ObjectID]Counts, len(pollIDs))

	cur, err := s.votes.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"poll_id": bson.M{"$in": pollIDs}}},
		{"$group": bson.M{
			"_id": bson.M{"poll": "$poll_id", "option": "$option_id"},
			"n":   bson.M{"$sum": 1},
		}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			ID struct {
				Poll   primitive.ObjectID `bson:"poll"`
				Option primitive.ObjectID `bson:"option"`
			} `bson:"_id"`
			N int64 `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		c := result[row.ID.Poll]
		if c.ByOption == nil {
			c.ByOption = map[primitive.ObjectID]int64{}
		}
		c.ByOption[row.ID.Option] = row.N
		c.Total += row.N
		result[row.ID.Poll] = c
	}
	return result, cur.Err()
}

// choicesForViewer returns, for each listed poll the viewer voted in, the
// option they chose. At most one choice per poll exists by the unique
// (poll_id, user_id) index.
func (s *Store) choicesForViewer(ctx context.Context, pollIDs []primitive.ObjectID, viewerID primitive.ObjectID) (map[primitive.ObjectID]primitive.ObjectID, error) {
	cur, err := s.votes.Find(ctx, bson.M{
		"user_id": viewerID,
		"poll_id": bson.M{"$in": pollIDs},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	choices := make(map[primitive.ObjectID]primitive.ObjectID)
	for cur.Next(ctx) {
		var v models.Vote
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		choices[v.PollID] = v.OptionID
	}
	return choices, cur.Err()
}
