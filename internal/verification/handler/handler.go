// Package handler exposes verification submission over HTTP.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ekoshield/internal/verification"
	"ekoshield/pkg/apierrors"
	"ekoshield/pkg/httputil"
	"ekoshield/pkg/requestcontext"
)

// Bulk uploads larger than this are rejected before parsing.
const maxBulkUpload = 5 << 20

// Service defines the verification operations the handler needs.
type Service interface {
	Submit(ctx context.Context, req verification.SubmitRequest) (verification.SubmitOutcome, error)
	SubmitBulk(ctx context.Context, serviceID string, csvData io.Reader) (verification.SubmitOutcome, error)
}

// Handler wires verification endpoints to the verification service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a verification handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts verification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verify", h.HandleSubmit)
	r.Post("/verify/bulk", h.HandleSubmitBulk)
}

// HandleSubmit handles POST /verify requests.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[verification.SubmitRequest](w, r, h.logger)
	if !ok {
		return
	}

	outcome, err := h.service.Submit(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "verification submission failed",
			"request_id", requestID,
			"services", len(req.Items),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "verification submission completed",
		"request_id", requestID,
		"services", len(req.Items),
		"results", len(outcome.Results),
		"skipped", len(outcome.Skipped),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, outcome)
}

// HandleSubmitBulk handles POST /verify/bulk requests. The body is a
// multipart form with a service_id field and a CSV file part named "file".
func (h *Handler) HandleSubmitBulk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	if err := r.ParseMultipartForm(maxBulkUpload); err != nil {
		httputil.WriteError(w, apierrors.New(apierrors.CodeBadRequest, "invalid multipart body"))
		return
	}
	serviceID := r.FormValue("service_id")
	if serviceID == "" {
		httputil.WriteError(w, apierrors.New(apierrors.CodeBadRequest, "service_id is required"))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, apierrors.New(apierrors.CodeBadRequest, "csv file is required"))
		return
	}
	defer file.Close()

	outcome, err := h.service.SubmitBulk(ctx, serviceID, file)
	if err != nil {
		h.logger.ErrorContext(ctx, "bulk verification failed",
			"request_id", requestID,
			"service", serviceID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "bulk verification completed",
		"request_id", requestID,
		"service", serviceID,
		"results", len(outcome.Results),
		"skipped", len(outcome.Skipped),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, outcome)
}
