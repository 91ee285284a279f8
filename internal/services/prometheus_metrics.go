package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionProcessed      *prometheus.CounterVec
	transactionDuration       prometheus.Histogram
	authenticationEventsTotal *prometheus.CounterVec
	accountsOpenedTotal       *prometheus.CounterVec
	balanceTotal              prometheus.Gauge
}

// NewPrometheusMetrics registers the engine's metrics with the default
// registry. Construct at most once per process.
func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		transactionProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_transactions_total",
				Help: "Total number of balance mutations processed",
			},
			[]string{"operation", "status"},
		),
		transactionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bank_transaction_duration_milliseconds",
				Help:    "Balance mutation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		accountsOpenedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_accounts_opened_total",
				Help: "Total number of accounts opened",
			},
			[]string{"account_type"},
		),
		balanceTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "bank_balance_total",
				Help: "Last computed bank-wide balance rollup",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	operation := tags["operation"]
	reason := tags["reason"]

	switch name {
	case "transaction.processed.success":
		m.transactionProcessed.WithLabelValues(operation, "success").Inc()
	case "transaction.processed.failed":
		m.transactionProcessed.WithLabelValues(operation, "failed_"+reason).Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	case "account.opened":
		if accountType := tags["account_type"]; accountType != "" {
			m.accountsOpenedTotal.WithLabelValues(accountType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "transaction.processing":
		m.transactionDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "bank_balance_total":
		m.balanceTotal.Set(value)
	}
}

// NoopMetrics discards every recording. Tests use it to avoid duplicate
// registration on the default prometheus registry.
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface { return &NoopMetrics{} }

func (m *NoopMetrics) IncrementCounter(name string, tags map[string]string) {}

func (m *NoopMetrics) RecordProcessingTime(name string, duration time.Duration) {}

func (m *NoopMetrics) RecordGauge(name string, value float64, tags map[string]string) {}
