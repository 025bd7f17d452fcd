// Package handler exposes the verification result log over HTTP, including
// filtered listing and JSON/PDF export downloads.
package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ekoshield/internal/audit"
	"ekoshield/internal/export"
	"ekoshield/internal/platform/metrics"
	"ekoshield/internal/results"
	"ekoshield/pkg/apierrors"
	"ekoshield/pkg/httputil"
	"ekoshield/pkg/requestcontext"
)

// Service defines the result log operations the handler needs.
type Service interface {
	Query(ctx context.Context, f results.Filter) ([]results.Result, error)
	Delete(ctx context.Context, ids []int64) (int, error)
	Clear(ctx context.Context) error
}

// Handler wires result endpoints to the results service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor audit.Publisher
}

// New constructs a results handler with its dependencies.
func New(service Service, logger *slog.Logger, m *metrics.Metrics, auditor audit.Publisher) *Handler {
	if auditor == nil {
		auditor = audit.NopPublisher{}
	}
	return &Handler{service: service, logger: logger, metrics: m, auditor: auditor}
}

// Register mounts result endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/results", h.HandleList)
	r.Get("/results/export", h.HandleExport)
	r.Delete("/results", h.HandleDelete)
	r.Delete("/results/all", h.HandleClear)
}

// ListResponse is the body for GET /results.
type ListResponse struct {
	Results []results.Result `json:"results"`
	Total   int              `json:"total"`
}

// DeleteRequest is the body for DELETE /results.
type DeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// DeleteResponse is the body for DELETE /results and DELETE /results/all.
type DeleteResponse struct {
	Deleted int `json:"deleted"`
}

func filterFromQuery(r *http.Request) results.Filter {
	q := r.URL.Query()
	return results.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
	}
}

// HandleList handles GET /results requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Query(r.Context(), filterFromQuery(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []results.Result{}
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Results: records, Total: len(records)})
}

// HandleExport handles GET /results/export requests. The filter query
// params apply, so an export matches whatever view the caller filtered to.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "pdf" {
		httputil.WriteError(w, apierrors.New(apierrors.CodeBadRequest, "format must be json or pdf"))
		return
	}

	records, err := h.service.Query(ctx, filterFromQuery(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	now := time.Now()
	var buf bytes.Buffer
	switch format {
	case "json":
		err = export.WriteJSON(&buf, records)
	case "pdf":
		err = export.WritePDF(&buf, records, now)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "export failed",
			"request_id", requestcontext.RequestID(ctx),
			"format", format,
			"error", err,
		)
		httputil.WriteError(w, apierrors.Wrap(err, apierrors.CodeInternal, "could not render export"))
		return
	}

	if h.metrics != nil {
		h.metrics.ExportsTotal.WithLabelValues(format).Inc()
	}
	h.auditor.Emit(ctx, audit.Event{
		Action: audit.ActionResultsExported,
		Amount: len(records),
		Detail: format,
	})
	h.logger.InfoContext(ctx, "results exported",
		"request_id", requestcontext.RequestID(ctx),
		"format", format,
		"count", len(records),
	)

	contentType := "application/json"
	if format == "pdf" {
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(format, now)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// HandleDelete handles DELETE /results requests.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[DeleteRequest](w, r, h.logger)
	if !ok {
		return
	}
	if len(req.IDs) == 0 {
		httputil.WriteError(w, apierrors.New(apierrors.CodeBadRequest, "ids cannot be empty"))
		return
	}

	deleted, err := h.service.Delete(r.Context(), req.IDs)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}

// HandleClear handles DELETE /results/all requests.
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
