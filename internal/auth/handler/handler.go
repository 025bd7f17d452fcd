// Package handler exposes console login over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ekoshield/pkg/apierrors"
	"ekoshield/pkg/httputil"
)

// Service defines the auth operations the handler needs.
type Service interface {
	Login(ctx context.Context, password string) (string, error)
}

// Handler wires auth endpoints to the auth service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an auth handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts auth endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse is the body returned on a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// HandleLogin handles POST /auth/login requests.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[LoginRequest](w, r, h.logger)
	if !ok {
		return
	}
	if req.Password == "" {
		httputil.WriteError(w, apierrors.New(apierrors.CodeBadRequest, "password is required"))
		return
	}

	sessionToken, err := h.service.Login(r.Context(), req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LoginResponse{Token: sessionToken})
}
