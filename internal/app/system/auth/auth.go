// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/pollhub/internal/app/system/apierr"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Identity & resolver                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// Identity is a resolved, authenticated user as seen by the rest of the
// application. Handlers never see tokens; they see this.
type Identity struct {
	ID       primitive.ObjectID
	Username string
	Email    string
}

// Resolver turns an opaque bearer credential into an Identity.
//
// A nil Identity with a nil error means the credential is absent, invalid,
// or expired — the caller is anonymous. Errors are reserved for backend
// failures (e.g. the user lookup store being unavailable), so callers can
// distinguish "not signed in" from "cannot tell right now".
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current-identity helpers                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentIdentityKey ctxKey = "currentIdentity"

// CurrentIdentity returns the request's identity & "found?" flag.
func CurrentIdentity(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(currentIdentityKey).(*Identity)
	return id, ok
}

// ViewerID returns the current identity's ObjectID, or nil for anonymous
// viewers. Read paths pass this straight to the store.
func ViewerID(r *http.Request) *primitive.ObjectID {
	if id, ok := CurrentIdentity(r); ok {
		return &id.ID
	}
	return nil
}

func withIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentIdentityKey, id))
}

// WithTestIdentity injects an identity directly into the request context.
// Test helper; bypasses token resolution.
func WithTestIdentity(r *http.Request, id *Identity) *http.Request {
	return withIdentity(r, id)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// BearerToken extracts the credential from an "Authorization: Bearer x"
// header, or "" if the header is absent or not bearer-shaped.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, prefix))
}

// LoadIdentity resolves the bearer token (when present) and injects the
// Identity into the request context. Requests with no or invalid tokens
// continue anonymously; resolution backend failures are logged and also
// continue anonymously, which turns into a 401 on auth-required routes
// rather than failing public reads.
func LoadIdentity(res Resolver, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := res.Resolve(r.Context(), token)
			if err != nil {
				log.Warn("identity resolution failed", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if id != nil {
				r = withIdentity(r, id)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireIdentity ensures there is an identity in context (set by
// LoadIdentity). Otherwise: 401 with the standard envelope.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentIdentity(r); !ok {
			apierr.Write(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
