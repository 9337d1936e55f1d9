// internal/app/features/polls/handler.go

// Package polls serves the poll API: create, list, fetch, and vote.
// Reads are public; creating a poll and casting a vote require an
// authenticated identity.
package polls

import (
	pollstore "github.com/dalemusser/pollhub/internal/app/store/polls"
	"github.com/dalemusser/pollhub/internal/app/system/apierr"
	"github.com/dalemusser/pollhub/internal/app/system/voting"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the dependency container for the polls feature.
type Handler struct {
	Polls  *pollstore.Store
	Engine *voting.Engine
	ErrLog *apierr.Logger
	Log    *zap.Logger
}

// NewHandler constructs a polls Handler.
func NewHandler(db *mongo.Database, errLog *apierr.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Polls:  pollstore.New(db),
		Engine: voting.NewEngine(db, logger),
		ErrLog: errLog,
		Log:    logger,
	}
}
