package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/pollhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// stubResolver returns a fixed identity (or error) for any token.
type stubResolver struct {
	id  *auth.Identity
	err error
}

func (s stubResolver) Resolve(ctx context.Context, token string) (*auth.Identity, error) {
	return s.id, s.err
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"absent", "", ""},
		{"bearer", "Bearer abc123", "abc123"},
		{"bearer with padding", "Bearer   abc123  ", "abc123"},
		{"basic auth", "Basic abc123", ""},
		{"bare token", "abc123", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			if got := auth.BearerToken(r); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoadIdentity_ValidToken(t *testing.T) {
	want := &auth.Identity{ID: primitive.NewObjectID(), Username: "alice", Email: "alice@example.com"}

	handler := auth.LoadIdentity(stubResolver{id: want}, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := auth.CurrentIdentity(r)
			if !ok {
				t.Fatal("expected identity in context")
			}
			if got.ID != want.ID {
				t.Errorf("id: got %v, want %v", got.ID, want.ID)
			}
		}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestLoadIdentity_NoToken(t *testing.T) {
	handler := auth.LoadIdentity(stubResolver{id: &auth.Identity{}}, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := auth.CurrentIdentity(r); ok {
				t.Error("expected anonymous request")
			}
			if auth.ViewerID(r) != nil {
				t.Error("expected nil viewer id for anonymous request")
			}
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}

func TestLoadIdentity_ResolverFailureContinuesAnonymous(t *testing.T) {
	handler := auth.LoadIdentity(stubResolver{err: errors.New("store down")}, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := auth.CurrentIdentity(r); ok {
				t.Error("expected anonymous request on resolver failure")
			}
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireIdentity(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	auth.RequireIdentity(next).ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	rec = httptest.NewRecorder()
	req := auth.WithTestIdentity(httptest.NewRequest("POST", "/", nil),
		&auth.Identity{ID: primitive.NewObjectID(), Username: "alice"})
	auth.RequireIdentity(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated: got %d, want %d", rec.Code, http.StatusOK)
	}
}
