package results

import (
	"context"
	"fmt"
	"log/slog"

	"ekoshield/internal/audit"
	"ekoshield/internal/platform/metrics"
	"ekoshield/pkg/apierrors"
	"ekoshield/pkg/requestcontext"
)

// Service fronts the result sink with logging, metrics, and audit.
type Service struct {
	store   Store
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

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("result store is required")
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

// Append records one verification outcome and returns it with its assigned
// ID and timestamp.
func (s *Service) Append(ctx context.Context, r Result) (Result, error) {
	stored, err := s.store.Append(ctx, r)
	if err != nil {
		return Result{}, apierrors.Wrap(err, apierrors.CodeInternal, "failed to store result")
	}
	if s.metrics != nil {
		s.metrics.ResultsStored.Inc()
	}
	return stored, nil
}

// Query returns the filtered subset in insertion order.
func (s *Service) Query(ctx context.Context, f Filter) ([]Result, error) {
	out, err := s.store.Query(ctx, f)
	if err != nil {
		return nil, apierrors.Wrap(err, apierrors.CodeInternal, "failed to query results")
	}
	return out, nil
}

// Delete removes results by ID. Unknown IDs are ignored.
func (s *Service) Delete(ctx context.Context, ids []int64) (int, error) {
	n, err := s.store.Delete(ctx, ids)
	if err != nil {
		return 0, apierrors.Wrap(err, apierrors.CodeInternal, "failed to delete results")
	}
	s.logger.InfoContext(ctx, "results deleted",
		"request_id", requestcontext.RequestID(ctx),
		"requested", len(ids),
		"deleted", n,
	)
	return n, nil
}

// Clear removes everything. No undo.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return apierrors.Wrap(err, apierrors.CodeInternal, "failed to clear results")
	}
	s.auditor.Emit(ctx, audit.Event{
		Action:    audit.ActionResultsCleared,
		RequestID: requestcontext.RequestID(ctx),
		Device:    requestcontext.Device(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
	})
	return nil
}
