// Package http assembles the console's route tree. Login and health are
// public; everything else sits behind a session token.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ekoshield/internal/platform/middleware"
	"ekoshield/pkg/httputil"
)

// Registrar mounts a feature's routes onto a router.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig carries everything the route tree needs.
type RouterConfig struct {
	Logger *slog.Logger

	// Validator guards the protected subtree. Nil disables auth, which is
	// only acceptable in tests.
	Validator middleware.TokenValidator

	Auth     Registrar
	Catalog  Registrar
	Wallet   Registrar
	Results  Registrar
	Keystore Registrar
	Verify   Registrar
}

// NewRouter builds the chi router with shared middleware applied.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Device)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if cfg.Auth != nil {
		cfg.Auth.Register(r)
	}

	r.Group(func(protected chi.Router) {
		if cfg.Validator != nil {
			protected.Use(middleware.RequireAuth(cfg.Validator, cfg.Logger))
		}
		for _, reg := range []Registrar{cfg.Catalog, cfg.Wallet, cfg.Results, cfg.Keystore, cfg.Verify} {
			if reg != nil {
				reg.Register(protected)
			}
		}
	})

	return r
}
