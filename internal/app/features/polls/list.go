// internal/app/features/polls/list.go
package polls

import (
	"context"
	"net/http"

	"github.com/dalemusser/pollhub/internal/app/system/auth"
	"github.com/dalemusser/pollhub/internal/app/system/paging"
	"github.com/dalemusser/pollhub/internal/app/system/pollview"
	"github.com/dalemusser/pollhub/internal/app/system/timeouts"
	"github.com/go-chi/render"
)

// HandleList processes GET /api/polls. Anyone may list; an authenticated
// viewer additionally sees which option they voted for on each poll.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := paging.Parse(r)
	viewerID := auth.ViewerID(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pws, total, err := h.Polls.List(ctx, page, viewerID)
	if err != nil {
		h.ErrLog.ServerError(w, r, "polls: list failed", err, "An error occurred while fetching polls")
		return
	}

	render.JSON(w, r, listPollsResponse{
		Polls: pollview.BuildAll(pws),
		Pagination: pagination{
			Total: total,
			Page:  page.Page,
			Limit: page.Limit,
			Pages: page.Pages(total),
		},
	})
}
