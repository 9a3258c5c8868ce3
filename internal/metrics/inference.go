package metrics

import "github.com/prometheus/client_golang/prometheus"

// Inference Prometheus metrics (embedding + QA providers).
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storelens",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storelens",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storelens",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"model", "type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storelens",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	QARequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storelens",
			Name:      "qa_requests_total",
			Help:      "Total number of QA model requests",
		},
		[]string{"model", "status"},
	)

	QARequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storelens",
			Name:      "qa_request_duration_seconds",
			Help:      "QA model request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	QAConfidenceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storelens",
			Name:      "qa_confidence_total",
			Help:      "QA answers by confidence bucket",
		},
		[]string{"confidence"},
	)
)

// RegisterInferenceMetrics registers inference metrics explicitly (no init()).
func RegisterInferenceMetrics() {
	prometheus.MustRegister(
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		EmbeddingTokensTotal,
		EmbeddingCacheTotal,
		QARequestsTotal,
		QARequestDuration,
		QAConfidenceTotal,
	)
}
