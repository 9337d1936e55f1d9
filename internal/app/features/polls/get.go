// internal/app/features/polls/get.go
package polls

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/pollhub/internal/app/system/apierr"
	"github.com/dalemusser/pollhub/internal/app/system/auth"
	"github.com/dalemusser/pollhub/internal/app/system/pollview"
	"github.com/dalemusser/pollhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	pollstore "github.com/dalemusser/pollhub/internal/app/store/polls"
)

// HandleGet processes GET /api/polls/{id}. A malformed id can reference
// no poll, so it gets the same 404 as an unknown one.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	pollID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, r, http.StatusNotFound, "Poll not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pw, err := h.Polls.GetWithCounts(ctx, pollID, auth.ViewerID(r))
	if errors.Is(err, pollstore.ErrNotFound) {
		apierr.Write(w, r, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		h.ErrLog.ServerError(w, r, "polls: get failed", err, "An error occurred while fetching the poll")
		return
	}

	render.JSON(w, r, pollview.Build(pw))
}
