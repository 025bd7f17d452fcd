// Package handler exposes the credit wallet over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ekoshield/internal/wallet"
	"ekoshield/pkg/apierrors"
	"ekoshield/pkg/httputil"
	"ekoshield/pkg/requestcontext"
)

// Service defines the wallet operations the handler needs.
type Service interface {
	Balance(ctx context.Context) int
	Transactions(ctx context.Context) []wallet.Transaction
	Credit(ctx context.Context, amount int, description string) (wallet.Transaction, error)
	Reset(ctx context.Context, balance int) error
}

// Handler wires wallet endpoints to the wallet service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a wallet handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts wallet endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/wallet", h.HandleBalance)
	r.Get("/wallet/transactions", h.HandleTransactions)
	r.Post("/wallet/topup", h.HandleTopUp)
	r.Post("/wallet/reset", h.HandleReset)
}

// BalanceResponse is the body for GET /wallet.
type BalanceResponse struct {
	Balance int `json:"balance"`
}

// TopUpRequest is the body for POST /wallet/topup.
type TopUpRequest struct {
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

// ResetRequest is the body for POST /wallet/reset.
type ResetRequest struct {
	Balance int `json:"balance"`
}

// HandleBalance handles GET /wallet requests.
func (h *Handler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Balance: h.service.Balance(r.Context())})
}

// HandleTransactions handles GET /wallet/transactions requests.
func (h *Handler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	txs := h.service.Transactions(r.Context())
	if txs == nil {
		txs = []wallet.Transaction{}
	}
	httputil.WriteJSON(w, http.StatusOK, txs)
}

// HandleTopUp handles POST /wallet/topup requests.
func (h *Handler) HandleTopUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[TopUpRequest](w, r, h.logger)
	if !ok {
		return
	}
	description := req.Description
	if description == "" {
		description = "Credits added"
	}

	tx, err := h.service.Credit(ctx, req.Amount, description)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "wallet topped up",
		"request_id", requestcontext.RequestID(ctx),
		"amount", req.Amount,
		"balance", tx.BalanceAfter,
	)
	httputil.WriteJSON(w, http.StatusOK, tx)
}

// HandleReset handles POST /wallet/reset requests.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[ResetRequest](w, r, h.logger)
	if !ok {
		return
	}
	if req.Balance < 0 {
		httputil.WriteError(w, apierrors.New(apierrors.CodeBadRequest, "balance cannot be negative"))
		return
	}

	if err := h.service.Reset(ctx, req.Balance); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "wallet reset",
		"request_id", requestcontext.RequestID(ctx),
		"balance", req.Balance,
	)
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Balance: req.Balance})
}
