// internal/app/system/pollview/pollview.go

// Package pollview shapes stored poll data into the snapshot returned to
// clients. It is pure field selection — no queries, no business logic —
// but it is the single place that decides whether the viewer's own vote
// is visible, so every read path (single fetch, list, post-vote) must
// shape its response here and nowhere else.
package pollview

import (
	"time"

	pollstore "github.com/dalemusser/pollhub/internal/app/store/polls"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snapshot is the client-facing view of a poll: counts plus, for
// authenticated viewers who voted, the option they chose.
type Snapshot struct {
	ID         primitive.ObjectID  `json:"id"`
	Title      string              `json:"title"`
	CreatedAt  time.Time           `json:"createdAt"`
	CreatedBy  Creator             `json:"createdBy"`
	TotalVotes int64               `json:"totalVotes"`
	Options    []OptionCount       `json:"options"`
	UserVoted  *primitive.ObjectID `json:"userVoted,omitempty"`
}

// Creator identifies the poll's author by username only.
type Creator struct {
	Username string `json:"username"`
}

// OptionCount is one option with its derived vote count.
type OptionCount struct {
	ID    primitive.ObjectID `json:"id"`
	Text  string             `json:"text"`
	Votes int64              `json:"votes"`
}

// Build shapes raw store data into a Snapshot. Options keep their stored
// (insertion) order; options nobody voted for report zero. UserVoted is
// present exactly when the store reported a viewer choice.
func Build(pw pollstore.PollWithCounts) Snapshot {
	opts := make([]OptionCount, 0, len(pw.Poll.Options))
	for _, o := range pw.Poll.Options {
		opts = append(opts, OptionCount{
			ID:    o.ID,
			Text:  o.Text,
			Votes: pw.Counts.ByOption[o.ID],
		})
	}

	return Snapshot{
		ID:         pw.Poll.ID,
		Title:      pw.Poll.Title,
		CreatedAt:  pw.Poll.CreatedAt,
		CreatedBy:  Creator{Username: pw.Poll.CreatorName},
		TotalVotes: pw.Counts.Total,
		Options:    opts,
		UserVoted:  pw.ViewerChoice,
	}
}

// BuildAll shapes a page of polls.
func BuildAll(pws []pollstore.PollWithCounts) []Snapshot {
	out := make([]Snapshot, 0, len(pws))
	for _, pw := range pws {
		out = append(out, Build(pw))
	}
	return out
}
