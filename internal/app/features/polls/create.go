// internal/app/features/polls/create.go
package polls

import (
	"context"
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"github.com/dalemusser/pollhub/internal/app/system/apierr"
	"github.com/dalemusser/pollhub/internal/app/system/auth"
	"github.com/dalemusser/pollhub/internal/app/system/pollview"
	"github.com/dalemusser/pollhub/internal/app/system/sanitize"
	"github.com/dalemusser/pollhub/internal/app/system/timeouts"
	"github.com/dalemusser/pollhub/internal/domain/models"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	pollstore "github.com/dalemusser/pollhub/internal/app/store/polls"
)

// HandleCreate processes POST /api/polls. Requires an authenticated
// identity (enforced by middleware on the route).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		apierr.Write(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, r, http.StatusBadRequest, "Invalid input")
		return
	}

	title := sanitize.Text(req.Title)
	optionTexts := make([]string, 0, len(req.Options))
	for _, o := range req.Options {
		optionTexts = append(optionTexts, sanitize.Text(o.Text))
	}

	fields := map[string][]string{}
	if utf8.RuneCountInString(title) < models.MinTitleLen {
		fields["title"] = append(fields["title"], "Title must be at least 5 characters")
	}
	switch {
	case len(optionTexts) < models.MinPollOptions:
		fields["options"] = append(fields["options"], "At least 2 options are required")
	case len(optionTexts) > models.MaxPollOptions:
		fields["options"] = append(fields["options"], "Maximum 5 options allowed")
	default:
		for _, text := range optionTexts {
			if text == "" {
				fields["options"] = append(fields["options"], "Option text is required")
				break
			}
		}
	}
	if len(fields) > 0 {
		apierr.WriteFields(w, r, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Polls.Create(ctx, ident.ID, ident.Username, title, optionTexts)
	if err != nil {
		h.ErrLog.ServerError(w, r, "polls: create failed", err, "An error occurred while creating the poll")
		return
	}

	h.Log.Info("poll created",
		zap.String("poll_id", p.ID.Hex()),
		zap.String("user_id", ident.ID.Hex()))

	// A brand-new poll has no votes, so the snapshot is built from the
	// inserted document alone.
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, pollview.Build(pollstore.PollWithCounts{Poll: p}))
}
