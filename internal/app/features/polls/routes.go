// internal/app/features/polls/routes.go
package polls

import (
	"github.com/dalemusser/pollhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the poll API, mounted under /api/polls.
// Reads are public; create and vote require an identity.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireIdentity)
		r.Post("/", h.HandleCreate)
		r.Post("/{id}/vote", h.HandleVote)
	})

	return r
}
