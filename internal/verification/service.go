// Package verification runs the submission loop: for each selected service,
// debit a credit, call the provider, normalize the payload, and record the
// outcome. One service failing never stops the services after it; only an
// unexpected (non-provider) error aborts the rest of the loop.
package verification

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ekoshield/internal/audit"
	"ekoshield/internal/catalog"
	"ekoshield/internal/platform/metrics"
	"ekoshield/internal/provider"
	"ekoshield/internal/results"
	"ekoshield/internal/wallet"
	"ekoshield/pkg/apierrors"
	"ekoshield/pkg/requestcontext"
)

// Keystore supplies the provider API key configured by the operator.
type Keystore interface {
	Get(ctx context.Context) (string, error)
}

// ServiceRequest selects one catalog service with its input fields.
type ServiceRequest struct {
	ServiceID string            `json:"service_id"`
	Fields    map[string]string `json:"fields"`
}

// SubmitRequest is one verification workflow submission. Items run in
// selection order.
type SubmitRequest struct {
	Items []ServiceRequest `json:"items"`
}

// Notification is the per-service outcome message shown to the operator.
type Notification struct {
	Service string `json:"service"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SkippedService records a call that never reached the network.
type SkippedService struct {
	Service string `json:"service"`
	Reason  string `json:"reason"`
}

// SubmitOutcome aggregates everything one submission produced. Results holds
// exactly the calls that were attempted; credit-denied calls appear only
// under Skipped.
type SubmitOutcome struct {
	Results       []results.Result `json:"results"`
	Skipped       []SkippedService `json:"skipped,omitempty"`
	Notifications []Notification   `json:"notifications"`
}

// Service wires the dispatch loop to the wallet, the provider, and the
// result sink.
type Service struct {
	keys       Keystore
	wallet     *wallet.Service
	sink       *results.Service
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
	auditor    audit.Publisher
	tracer     trace.Tracer
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

// WithHTTPClient overrides the provider transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Service) { s.httpClient = hc }
}

func New(keys Keystore, walletSvc *wallet.Service, sink *results.Service, baseURL string, opts ...Option) (*Service, error) {
	if keys == nil {
		return nil, fmt.Errorf("keystore is required")
	}
	if walletSvc == nil {
		return nil, fmt.Errorf("wallet service is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("result sink is required")
	}
	svc := &Service{
		keys:    keys,
		wallet:  walletSvc,
		sink:    sink,
		baseURL: baseURL,
		logger:  slog.Default(),
		auditor: audit.NopPublisher{},
		tracer:  otel.Tracer("ekoshield/verification"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Submit runs the verification loop over the selected services in order.
// On an unexpected error the outcome gathered so far is returned alongside
// it; recorded results are never rolled back.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (SubmitOutcome, error) {
	var outcome SubmitOutcome

	if len(req.Items) == 0 {
		return outcome, apierrors.New(apierrors.CodeBadRequest, "select at least one verification service")
	}

	client, err := s.newClient(ctx)
	if err != nil {
		return outcome, err
	}

	ctx, span := s.tracer.Start(ctx, "verification.submit",
		trace.WithAttributes(attribute.Int("services.selected", len(req.Items))))
	defer span.End()

	for _, item := range req.Items {
		if err := s.dispatchOne(ctx, client, item, &outcome); err != nil {
			span.RecordError(err)
			return outcome, apierrors.Wrap(err, apierrors.CodeInternal, "verification aborted")
		}
	}

	span.SetAttributes(
		attribute.Int("services.recorded", len(outcome.Results)),
		attribute.Int("services.skipped", len(outcome.Skipped)),
	)
	return outcome, nil
}

// dispatchOne handles a single selected service. Provider and network
// failures come back as recorded FAILED results; the returned error is
// reserved for conditions that must abort the remaining loop.
func (s *Service) dispatchOne(ctx context.Context, client *provider.Client, item ServiceRequest, outcome *SubmitOutcome) error {
	svc, ok := catalog.Lookup(item.ServiceID)
	if !ok {
		outcome.Skipped = append(outcome.Skipped, SkippedService{
			Service: item.ServiceID,
			Reason:  "unknown service",
		})
		outcome.Notifications = append(outcome.Notifications, Notification{
			Service: item.ServiceID,
			Message: fmt.Sprintf("unknown verification service %q", item.ServiceID),
		})
		return nil
	}

	payload := make(map[string]string, len(svc.Fields))
	for _, f := range svc.Fields {
		payload[f] = item.Fields[f]
	}

	start := time.Now()
	env, err := client.Verify(ctx, svc.Endpoint, payload)
	if err != nil {
		return fmt.Errorf("call %s: %w", svc.ID, err)
	}
	if s.metrics != nil && !env.Skipped {
		s.metrics.VerificationDuration.Observe(time.Since(start).Seconds())
	}

	if env.Skipped {
		outcome.Skipped = append(outcome.Skipped, SkippedService{
			Service: svc.Name,
			Reason:  env.Error,
		})
		outcome.Notifications = append(outcome.Notifications, Notification{
			Service: svc.Name,
			Message: fmt.Sprintf("%s skipped: %s", svc.Name, env.Error),
		})
		s.auditor.Emit(ctx, audit.Event{
			Action:    audit.ActionVerificationSkipped,
			Service:   svc.ID,
			Category:  svc.Category,
			Detail:    env.Error,
			RequestID: requestcontext.RequestID(ctx),
			Device:    requestcontext.Device(ctx),
		})
		return nil
	}

	result := results.Result{
		Service:   svc.Name,
		Category:  catalog.CategoryLabel(svc.Category),
		InputData: payload,
	}
	if env.Success {
		result.Status = results.StatusSuccess
		resp := catalog.Normalize(svc.ID, env.Data)
		result.Response = &resp
	} else {
		result.Status = results.StatusFailed
		result.Error = env.Error
		if env.Data != nil {
			result.Response = &results.Response{Details: env.Data}
		}
	}

	stored, err := s.sink.Append(ctx, result)
	if err != nil {
		return fmt.Errorf("record %s result: %w", svc.ID, err)
	}
	outcome.Results = append(outcome.Results, stored)

	if s.metrics != nil {
		s.metrics.VerificationsTotal.WithLabelValues(svc.Category, string(result.Status)).Inc()
	}
	s.auditor.Emit(ctx, audit.Event{
		Action:    audit.ActionVerificationCalled,
		Service:   svc.ID,
		Category:  svc.Category,
		Detail:    string(result.Status),
		RequestID: requestcontext.RequestID(ctx),
		Device:    requestcontext.Device(ctx),
	})

	if env.Success {
		outcome.Notifications = append(outcome.Notifications, Notification{
			Service: svc.Name,
			Success: true,
			Message: fmt.Sprintf("%s verification completed successfully", svc.Name),
		})
	} else {
		outcome.Notifications = append(outcome.Notifications, Notification{
			Service: svc.Name,
			Message: fmt.Sprintf("%s verification failed: %s", svc.Name, env.Error),
		})
		s.logger.WarnContext(ctx, "verification failed",
			"request_id", requestcontext.RequestID(ctx),
			"service", svc.ID,
			"error", env.Error,
		)
	}
	return nil
}

// newClient builds a metered provider client for one submission.
func (s *Service) newClient(ctx context.Context) (*provider.Client, error) {
	apiKey, err := s.keys.Get(ctx)
	if err != nil {
		return nil, apierrors.Wrap(err, apierrors.CodeInternal, "failed to load API key")
	}
	if apiKey == "" {
		return nil, apierrors.New(apierrors.CodeBadRequest, "configure your API key first")
	}
	opts := []provider.Option{provider.WithDebitFunc(s.wallet.DebitFunc(ctx))}
	if s.httpClient != nil {
		opts = append(opts, provider.WithHTTPClient(s.httpClient))
	}
	return provider.NewClient(s.baseURL, apiKey, opts...), nil
}
