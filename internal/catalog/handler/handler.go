// Package handler exposes the service catalog over HTTP.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ekoshield/internal/catalog"
	"ekoshield/pkg/apierrors"
	"ekoshield/pkg/httputil"
)

// Handler serves the static verification catalog.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// Register mounts catalog endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/catalog", h.HandleCatalog)
	r.Get("/catalog/{category}", h.HandleCategory)
	r.Get("/catalog/services/{id}/template", h.HandleTemplate)
}

// CatalogResponse is the body for GET /catalog.
type CatalogResponse struct {
	Categories []catalog.Category `json:"categories"`
	Services   []catalog.Service  `json:"services"`
}

// HandleCatalog handles GET /catalog requests.
func (h *Handler) HandleCatalog(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, CatalogResponse{
		Categories: catalog.Categories,
		Services:   catalog.All(),
	})
}

// HandleCategory handles GET /catalog/{category} requests.
func (h *Handler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "category")
	services := catalog.ByCategory(categoryID)
	if len(services) == 0 {
		httputil.WriteError(w, apierrors.New(apierrors.CodeNotFound, "unknown category"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, services)
}

// HandleTemplate handles GET /catalog/services/{id}/template requests,
// serving the CSV template for bulk uploads of that service.
func (h *Handler) HandleTemplate(w http.ResponseWriter, r *http.Request) {
	svc, ok := catalog.Lookup(chi.URLParam(r, "id"))
	if !ok {
		httputil.WriteError(w, apierrors.New(apierrors.CodeNotFound, "unknown service"))
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+svc.ID+`_template.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(svc.Template()))
}
