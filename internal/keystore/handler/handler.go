// Package handler exposes API key management over HTTP. The key is never
// returned in full once stored; reads get a masked rendering.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"ekoshield/internal/keystore"
	"ekoshield/pkg/apierrors"
	"ekoshield/pkg/httputil"
	"ekoshield/pkg/requestcontext"
)

// Handler wires API key endpoints to the keystore.
type Handler struct {
	store  keystore.Store
	logger *slog.Logger
}

// New constructs a keystore handler with its dependencies.
func New(store keystore.Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts API key endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/apikey", h.HandleGet)
	r.Put("/apikey", h.HandlePut)
	r.Delete("/apikey", h.HandleDelete)
}

// PutRequest is the body for PUT /apikey.
type PutRequest struct {
	APIKey string `json:"api_key"`
}

// KeyResponse is the body for GET and PUT /apikey.
type KeyResponse struct {
	Configured bool   `json:"configured"`
	MaskedKey  string `json:"masked_key,omitempty"`
}

// HandleGet handles GET /apikey requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	key, err := h.store.Get(r.Context())
	if err != nil {
		httputil.WriteError(w, apierrors.Wrap(err, apierrors.CodeInternal, "could not read api key"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, KeyResponse{
		Configured: key != "",
		MaskedKey:  keystore.Mask(key),
	})
}

// HandlePut handles PUT /apikey requests.
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[PutRequest](w, r, h.logger)
	if !ok {
		return
	}
	key := strings.TrimSpace(req.APIKey)
	if key == "" {
		httputil.WriteError(w, apierrors.New(apierrors.CodeBadRequest, "api_key cannot be empty"))
		return
	}

	if err := h.store.Set(ctx, key); err != nil {
		httputil.WriteError(w, apierrors.Wrap(err, apierrors.CodeInternal, "could not store api key"))
		return
	}

	h.logger.InfoContext(ctx, "api key updated",
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, KeyResponse{Configured: true, MaskedKey: keystore.Mask(key)})
}

// HandleDelete handles DELETE /apikey requests.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.store.Clear(ctx); err != nil {
		httputil.WriteError(w, apierrors.Wrap(err, apierrors.CodeInternal, "could not clear api key"))
		return
	}

	h.logger.InfoContext(ctx, "api key cleared",
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, KeyResponse{Configured: false})
}
