// internal/app/features/polls/vote.go
package polls

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/pollhub/internal/app/system/apierr"
	"github.com/dalemusser/pollhub/internal/app/system/auth"
	"github.com/dalemusser/pollhub/internal/app/system/timeouts"
	"github.com/dalemusser/pollhub/internal/app/system/voting"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleVote processes POST /api/polls/{id}/vote. Requires an
// authenticated identity (enforced by middleware on the route).
func (h *Handler) HandleVote(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		apierr.Write(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	pollID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, r, http.StatusNotFound, "Poll not found")
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, r, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.OptionID == "" {
		apierr.WriteFields(w, r, map[string][]string{
			"optionId": {"Option is required"},
		})
		return
	}

	// A malformed option id cannot belong to any poll.
	optionID, err := primitive.ObjectIDFromHex(req.OptionID)
	if err != nil {
		apierr.Write(w, r, http.StatusBadRequest, "Invalid option for this poll")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	snap, err := h.Engine.CastVote(ctx, pollID, ident.ID, optionID)
	switch {
	case errors.Is(err, voting.ErrPollNotFound):
		apierr.Write(w, r, http.StatusNotFound, "Poll not found")
		return
	case errors.Is(err, voting.ErrInvalidOption):
		apierr.Write(w, r, http.StatusBadRequest, "Invalid option for this poll")
		return
	case errors.Is(err, voting.ErrAlreadyVoted):
		apierr.Write(w, r, http.StatusConflict, "You have already voted in this poll")
		return
	case err != nil:
		h.ErrLog.ServerError(w, r, "polls: vote failed", err, "An error occurred while processing your vote")
		return
	}

	h.Log.Info("vote cast",
		zap.String("poll_id", pollID.Hex()),
		zap.String("user_id", ident.ID.Hex()),
		zap.String("option_id", optionID.Hex()))

	render.JSON(w, r, snap)
}
