// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/pollhub/internal/app/store/users"
	"github.com/dalemusser/pollhub/internal/app/system/apierr"
	"github.com/dalemusser/pollhub/internal/app/system/auth"
	"github.com/dalemusser/pollhub/internal/app/system/normalize"
	"github.com/dalemusser/pollhub/internal/app/system/timeouts"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the dependency container for the login feature.
type Handler struct {
	Users  *userstore.Store
	Tokens *auth.TokenAuth
	ErrLog *apierr.Logger
	Log    *zap.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(db *mongo.Database, tokens *auth.TokenAuth, errLog *apierr.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Tokens: tokens,
		ErrLog: errLog,
		Log:    logger,
	}
}

// HandleLogin processes POST /api/auth/login.
//
// Failed lookups and bad passwords produce the same response so the
// endpoint does not leak which emails have accounts.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, r, http.StatusBadRequest, "Invalid input")
		return
	}

	req.Email = normalize.Email(req.Email)

	fields := map[string][]string{}
	if req.Email == "" {
		fields["email"] = append(fields["email"], "Please enter a valid email address")
	}
	if req.Password == "" {
		fields["password"] = append(fields["password"], "Password is required")
	}
	if len(fields) > 0 {
		apierr.WriteFields(w, r, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierr.Write(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		h.ErrLog.ServerError(w, r, "login: user lookup failed", err, "An error occurred during login")
		return
	}

	if !h.Users.CheckPassword(u, req.Password) {
		apierr.Write(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.Tokens.Issue(*u)
	if err != nil {
		h.ErrLog.ServerError(w, r, "login: token issue failed", err, "An error occurred during login")
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", u.ID.Hex()))

	render.JSON(w, r, loginResponse{
		Message: "Login successful",
		Token:   token,
		User:    userBody{ID: u.ID.Hex(), Username: u.Username, Email: u.Email},
	})
}
