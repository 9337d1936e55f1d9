// internal/app/system/apierr/apierr.go

// Package apierr writes the API's JSON error envelope and logs server-side
// failures. Expected domain outcomes (validation, auth, not-found,
// conflict) are written with their message; unexpected failures are logged
// with detail and surfaced to the client as a generic message so internals
// never leak.
package apierr

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// Envelope is the body of every error response: a human-readable message
// and, for validation errors, per-field message lists.
type Envelope struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Write sends an error envelope with just a message.
func Write(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, Envelope{Message: message})
}

// WriteFields sends a 400 validation envelope with per-field errors.
func WriteFields(w http.ResponseWriter, r *http.Request, fields map[string][]string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Envelope{Message: "Invalid input", Errors: fields})
}

// Logger pairs a zap logger with the server-error response path so
// handlers report unexpected failures uniformly.
type Logger struct {
	log *zap.Logger
}

// NewLogger constructs an error Logger. It is typically called from the
// bootstrap BuildHandler function and shared across features.
func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

// ServerError logs err with request context and writes a 500 with the
// given public message. The error detail stays in the logs.
func (l *Logger) ServerError(w http.ResponseWriter, r *http.Request, what string, err error, public string) {
	l.log.Error(what,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	Write(w, r, http.StatusInternalServerError, public)
}
