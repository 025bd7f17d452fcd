package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	VerificationsTotal   *prometheus.CounterVec
	VerificationDuration prometheus.Histogram
	CreditsSpent         prometheus.Counter
	CreditsAdded         prometheus.Counter
	DebitsDenied         prometheus.Counter
	ResultsStored        prometheus.Counter
	ExportsTotal         *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		VerificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ekoshield_verifications_total",
			Help: "Total verification calls attempted, by category and status",
		}, []string{"category", "status"}),
		VerificationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ekoshield_verification_duration_seconds",
			Help:    "Wall time of a single provider verification call",
			Buckets: prometheus.DefBuckets,
		}),
		CreditsSpent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ekoshield_credits_spent_total",
			Help: "Total credits debited for provider calls",
		}),
		CreditsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ekoshield_credits_added_total",
			Help: "Total credits added to the wallet",
		}),
		DebitsDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ekoshield_debits_denied_total",
			Help: "Debit attempts rejected for insufficient balance",
		}),
		ResultsStored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ekoshield_results_stored_total",
			Help: "Verification results appended to the result store",
		}),
		ExportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ekoshield_exports_total",
			Help: "Result exports, by format",
		}, []string{"format"}),
	}
}
