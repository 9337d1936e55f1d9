// internal/app/features/register/handler.go
package register

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"unicode/utf8"

	userstore "github.com/dalemusser/pollhub/internal/app/store/users"
	"github.com/dalemusser/pollhub/internal/app/system/apierr"
	"github.com/dalemusser/pollhub/internal/app/system/normalize"
	"github.com/dalemusser/pollhub/internal/app/system/timeouts"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the dependency container for the register feature.
type Handler struct {
	Users  *userstore.Store
	ErrLog *apierr.Logger
	Log    *zap.Logger
}

// NewHandler constructs a register Handler.
func NewHandler(db *mongo.Database, errLog *apierr.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		ErrLog: errLog,
		Log:    logger,
	}
}

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// HandleRegister processes POST /api/auth/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, r, http.StatusBadRequest, "Invalid input")
		return
	}

	req.Username = normalize.Username(req.Username)
	req.Email = normalize.Email(req.Email)

	fields := map[string][]string{}
	if utf8.RuneCountInString(req.Username) < minUsernameLen {
		fields["username"] = append(fields["username"], "Username must be at least 3 characters")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fields["email"] = append(fields["email"], "Please enter a valid email address")
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLen {
		fields["password"] = append(fields["password"], "Password must be at least 6 characters")
	}
	if len(fields) > 0 {
		apierr.WriteFields(w, r, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, req.Username, req.Email, req.Password)
	if err == userstore.ErrDuplicateUser {
		apierr.Write(w, r, http.StatusConflict, "User with this email or username already exists")
		return
	}
	if err != nil {
		h.ErrLog.ServerError(w, r, "register: user create failed", err, "An error occurred during registration")
		return
	}

	h.Log.Info("user registered", zap.String("user_id", u.ID.Hex()))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, registerResponse{
		Message: "User registered successfully",
		User:    userBody{ID: u.ID.Hex(), Username: u.Username, Email: u.Email},
	})
}
