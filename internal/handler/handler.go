// Package handler contains the HTTP handlers for the users, tokens and
// checks resources.
package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"uptime-api/internal/apperror"
	"uptime-api/internal/auth"
	"uptime-api/internal/config"
	"uptime-api/internal/storage"
)

// Handler wraps the resource handlers with their collaborators.
type Handler struct {
	log    *zap.Logger
	store  *storage.Store
	auth   *auth.Authenticator
	hasher *auth.Hasher
	cfg    *config.Config
}

// New creates a new Handler instance.
func New(log *zap.Logger, store *storage.Store, a *auth.Authenticator, hasher *auth.Hasher, cfg *config.Config) *Handler {
	return &Handler{log: log, store: store, auth: a, hasher: hasher, cfg: cfg}
}

// Ping is a simple liveness endpoint.
func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	h.respond(w, http.StatusOK, nil)
}

func (h *Handler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("unable to write response stream", zap.Error(err))
	}
}

var statusMessages = map[int]string{
	http.StatusBadRequest:          "data validation failed",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusNotFound:            "not found",
	http.StatusConflict:            "already exists",
	http.StatusInternalServerError: "internal server error",
}

// respondError maps an error from the core onto its status code and a
// generic message. Internal failures are logged with their cause; the
// cause never reaches the client.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := apperror.Status(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	h.respond(w, status, map[string]string{"message": statusMessages[status]})
}
