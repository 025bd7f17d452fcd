package wallet

import (
	"context"
	"fmt"
	"log/slog"

	"ekoshield/internal/audit"
	"ekoshield/internal/platform/metrics"
	"ekoshield/pkg/apierrors"
	"ekoshield/pkg/requestcontext"
)

// Service enforces the pre-paid metering model for every outbound
// verification call and exposes top-up and history operations.
type Service struct {
	store   *InMemoryStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor audit.Publisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.auditor = p }
}

func New(store *InMemoryStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("wallet store is required")
	}
	svc := &Service{
		store:   store,
		logger:  slog.Default(),
		auditor: audit.NopPublisher{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Debit spends credits ahead of a provider call. Returns an
// insufficient_credit error, with state unchanged, when the balance is short.
func (s *Service) Debit(ctx context.Context, amount int, description string) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, apierrors.New(apierrors.CodeBadRequest, "debit amount must be positive")
	}
	tx, ok := s.store.TryDebit(amount, description)
	if !ok {
		if s.metrics != nil {
			s.metrics.DebitsDenied.Inc()
		}
		s.auditor.Emit(ctx, audit.Event{
			Action:    audit.ActionDebitDenied,
			Amount:    amount,
			Detail:    description,
			RequestID: requestcontext.RequestID(ctx),
		})
		return Transaction{}, apierrors.New(apierrors.CodeInsufficientCredit, "insufficient credits in wallet")
	}
	if s.metrics != nil {
		s.metrics.CreditsSpent.Add(float64(amount))
	}
	s.auditor.Emit(ctx, audit.Event{
		Action:    audit.ActionCreditsDebited,
		Amount:    amount,
		Detail:    description,
		RequestID: requestcontext.RequestID(ctx),
	})
	return tx, nil
}

// Credit adds credits to the wallet.
func (s *Service) Credit(ctx context.Context, amount int, description string) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, apierrors.New(apierrors.CodeBadRequest, "credit amount must be positive")
	}
	tx := s.store.Credit(amount, description)
	if s.metrics != nil {
		s.metrics.CreditsAdded.Add(float64(amount))
	}
	s.logger.InfoContext(ctx, "credits added",
		"request_id", requestcontext.RequestID(ctx),
		"amount", amount,
		"balance", tx.BalanceAfter,
	)
	s.auditor.Emit(ctx, audit.Event{
		Action:    audit.ActionCreditsAdded,
		Amount:    amount,
		Detail:    description,
		RequestID: requestcontext.RequestID(ctx),
		Device:    requestcontext.Device(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
	})
	return tx, nil
}

// Balance returns the current credit balance.
func (s *Service) Balance(_ context.Context) int {
	return s.store.Balance()
}

// Transactions returns the ledger newest-first.
func (s *Service) Transactions(_ context.Context) []Transaction {
	return s.store.Transactions()
}

// Reset bulk-clears the ledger and restores a starting balance.
func (s *Service) Reset(ctx context.Context, balance int) error {
	if balance < 0 {
		return apierrors.New(apierrors.CodeBadRequest, "balance cannot be negative")
	}
	s.store.Reset(balance)
	s.auditor.Emit(ctx, audit.Event{
		Action:    audit.ActionWalletReset,
		Amount:    balance,
		RequestID: requestcontext.RequestID(ctx),
		Device:    requestcontext.Device(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
	})
	return nil
}

// DebitFunc adapts the service to the provider client's pre-flight callback.
func (s *Service) DebitFunc(ctx context.Context) func(amount int, description string) bool {
	return func(amount int, description string) bool {
		_, err := s.Debit(ctx, amount, description)
		return err == nil
	}
}
