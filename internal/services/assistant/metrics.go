package assistant

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	operationChat    = "chat"
	operationAnalyze = "analyze"

	outcomeOK        = "ok"
	outcomeError     = "error"
	outcomeCancelled = "cancelled"
	outcomeCacheHit  = "cache_hit"
)

type Metrics struct {
	requests *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	return &Metrics{
		requests: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "adopour",
				Name:      "ai_requests_total",
				Help:      "Assistant model calls by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}
}

func (m *Metrics) observe(operation string, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, outcome).Inc()
}
