package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the bot
type Metrics struct {
	// Catalog metrics
	CatalogRequests        *prometheus.CounterVec
	CatalogRequestDuration *prometheus.HistogramVec
	CircuitBreakerState    *prometheus.GaugeVec
	CircuitBreakerChanges  *prometheus.CounterVec

	// Session metrics
	RateLimitRejections prometheus.Counter
	BatchesPresented    *prometheus.CounterVec

	// Favorites metrics
	FavoriteOutcomes *prometheus.CounterVec
	FavoriteRemovals prometheus.Counter

	// Kafka metrics
	KafkaMessagesProduced prometheus.Counter
	KafkaProduceErrors    prometheus.Counter

	// Broadcast metrics
	BroadcastRuns       *prometheus.CounterVec
	BroadcastDeliveries *prometheus.CounterVec
	BroadcastDuration   prometheus.Histogram
}

// NewMetrics creates all counters and gauges on the given registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CatalogRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "movieflow_catalog_requests_total",
				Help: "Total number of catalog requests by endpoint and result",
			},
			[]string{"endpoint", "result"},
		),
		CatalogRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "movieflow_catalog_request_duration_seconds",
				Help:    "Duration of catalog requests in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint"},
		),
		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "movieflow_circuit_breaker_state",
				Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),
		CircuitBreakerChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "movieflow_circuit_breaker_transitions_total",
				Help: "Total number of circuit breaker state transitions",
			},
			[]string{"name", "from", "to"},
		),

		RateLimitRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "movieflow_rate_limit_rejections_total",
			Help: "Total number of show-more requests rejected by the rate gate",
		}),
		BatchesPresented: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "movieflow_batches_presented_total",
				Help: "Total number of result batches presented to users",
			},
			[]string{"source"},
		),

		FavoriteOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "movieflow_favorite_add_outcomes_total",
				Help: "Total number of add-to-favorites attempts by outcome",
			},
			[]string{"outcome"},
		),
		FavoriteRemovals: factory.NewCounter(prometheus.CounterOpts{
			Name: "movieflow_favorite_removals_total",
			Help: "Total number of favorites removed",
		}),

		KafkaMessagesProduced: factory.NewCounter(prometheus.CounterOpts{
			Name: "movieflow_kafka_messages_produced_total",
			Help: "Total number of favorite events produced to Kafka",
		}),
		KafkaProduceErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "movieflow_kafka_produce_errors_total",
			Help: "Total number of Kafka produce errors",
		}),

		BroadcastRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "movieflow_broadcast_runs_total",
				Help: "Total number of broadcast runs by result",
			},
			[]string{"result"},
		),
		BroadcastDeliveries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "movieflow_broadcast_deliveries_total",
				Help: "Total number of broadcast deliveries by result",
			},
			[]string{"result"},
		),
		BroadcastDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "movieflow_broadcast_duration_seconds",
			Help:    "Duration of broadcast runs in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
	}
}

// RecordCatalogRequest records one catalog request
func (m *Metrics) RecordCatalogRequest(endpoint string, ok bool, durationSeconds float64) {
	result := "success"
	if !ok {
		result = "failure"
	}
	m.CatalogRequests.WithLabelValues(endpoint, result).Inc()
	m.CatalogRequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordCatalogRejected records a request rejected by the open circuit
func (m *Metrics) RecordCatalogRejected(endpoint string) {
	m.CatalogRequests.WithLabelValues(endpoint, "rejected").Inc()
}

// SetBreakerState updates circuit breaker state gauge
func (m *Metrics) SetBreakerState(name string, state float64) {
	m.CircuitBreakerState.WithLabelValues(name).Set(state)
}

// RecordBreakerTransition records a circuit breaker state change
func (m *Metrics) RecordBreakerTransition(name, from, to string, state float64) {
	m.CircuitBreakerChanges.WithLabelValues(name, from, to).Inc()
	m.CircuitBreakerState.WithLabelValues(name).Set(state)
}

// RecordRateLimited records a rejected show-more request
func (m *Metrics) RecordRateLimited() {
	m.RateLimitRejections.Inc()
}

// RecordBatch records a presented batch
func (m *Metrics) RecordBatch(source string) {
	m.BatchesPresented.WithLabelValues(source).Inc()
}

// RecordFavoriteOutcome records an add-to-favorites outcome
func (m *Metrics) RecordFavoriteOutcome(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.FavoriteOutcomes.WithLabelValues(outcome).Inc()
}

// RecordFavoriteRemoved records a removed favorite
func (m *Metrics) RecordFavoriteRemoved() {
	m.FavoriteRemovals.Inc()
}

// RecordKafkaMessage records a produced Kafka message
func (m *Metrics) RecordKafkaMessage() {
	m.KafkaMessagesProduced.Inc()
}

// RecordKafkaError records a Kafka produce error
func (m *Metrics) RecordKafkaError() {
	m.KafkaProduceErrors.Inc()
}

// RecordBroadcastRun records a finished broadcast run
func (m *Metrics) RecordBroadcastRun(ok bool, sent, failed int, durationSeconds float64) {
	result := "success"
	if !ok {
		result = "failure"
	}
	m.BroadcastRuns.WithLabelValues(result).Inc()
	if sent > 0 {
		m.BroadcastDeliveries.WithLabelValues("sent").Add(float64(sent))
	}
	if failed > 0 {
		m.BroadcastDeliveries.WithLabelValues("failed").Add(float64(failed))
	}
	m.BroadcastDuration.Observe(durationSeconds)
}
