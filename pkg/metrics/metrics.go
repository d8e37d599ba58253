package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Возможные исходы удалённого вызова
const (
	OutcomeOK             = "ok"
	OutcomeAppError       = "app_error"
	OutcomeTransportError = "transport_error"
)

// Metrics метрики клиента бронирования.
// Считает удалённые вызовы к backend, переходы на локальное хранилище
// и чисто локальные операции.
type Metrics struct {
	remoteRequests  *prometheus.CounterVec
	remoteDurations *prometheus.HistogramVec
	fallbacks       *prometheus.CounterVec
	localOps        *prometheus.CounterVec
}

// New создает и регистрирует метрики в реестре по умолчанию
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		remoteRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_client_remote_requests_total",
			Help:        "Total remote API calls by operation and outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),

		remoteDurations: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "booking_client_remote_request_duration_seconds",
			Help:        "Remote API call duration by operation",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),

		fallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_client_local_fallbacks_total",
			Help:        "Remote calls that fell back to the local store",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		localOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_client_local_operations_total",
			Help:        "Operations served from the local store",
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}
}

// ObserveRemote фиксирует исход и длительность удалённого вызова
func (m *Metrics) ObserveRemote(operation, outcome string, duration time.Duration) {
	m.remoteRequests.WithLabelValues(operation, outcome).Inc()
	m.remoteDurations.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncFallback фиксирует переход операции на локальное хранилище
func (m *Metrics) IncFallback(operation string) {
	m.fallbacks.WithLabelValues(operation).Inc()
}

// IncLocal фиксирует операцию, выполненную в локальном хранилище
func (m *Metrics) IncLocal(operation string) {
	m.localOps.WithLabelValues(operation).Inc()
}
