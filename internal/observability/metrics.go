package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// location normalization pipeline.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Resolution metrics.
	ResolutionScore   *prometheus.HistogramVec // labels: kind={event,team}
	ResolutionOutcome *prometheus.CounterVec   // labels: kind={event,team}, outcome={resolved,fallback,unresolved}

	// Places API metrics.
	PlacesRequests    *prometheus.CounterVec   // labels: operation, outcome={success,error,empty}
	PlacesCache       *prometheus.CounterVec   // labels: operation, result={hit,miss}
	PlacesAPIDuration *prometheus.HistogramVec // labels: operation
	PlacesEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "locnorm",
			Name:      "messages_consumed_total",
			Help:      "Total messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "locnorm",
			Name:      "messages_produced_total",
			Help:      "Total messages written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "locnorm",
			Name:      "transform_errors_total",
			Help:      "Total transformation failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "locnorm",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "locnorm",
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "locnorm",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ResolutionScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "locnorm",
			Name:      "resolution_score",
			Help:      "Final location match score per resolved record.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		}, []string{"kind"}),
		ResolutionOutcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "locnorm",
			Name:      "resolution_outcome_total",
			Help:      "Resolution attempts by record kind and outcome.",
		}, []string{"kind", "outcome"}),
		PlacesRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "locnorm",
			Name:      "places_requests_total",
			Help:      "Places API requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		PlacesCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "locnorm",
			Name:      "places_cache_total",
			Help:      "Places cache lookups by operation and result.",
		}, []string{"operation", "result"}),
		PlacesAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "locnorm",
			Name:      "places_api_duration_seconds",
			Help:      "Places API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),
		PlacesEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "locnorm",
			Name:      "places_enabled",
			Help:      "1 when the places provider is configured, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.ResolutionScore,
		m.ResolutionOutcome,
		m.PlacesRequests,
		m.PlacesCache,
		m.PlacesAPIDuration,
		m.PlacesEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "locnorm", Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "locnorm", Name: "messages_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "locnorm", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "locnorm", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "locnorm", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "locnorm", Name: "batch_processing_duration_seconds"}),
		ResolutionScore:         prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "locnorm", Name: "resolution_score"}, []string{"kind"}),
		ResolutionOutcome:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "locnorm", Name: "resolution_outcome_total"}, []string{"kind", "outcome"}),
		PlacesRequests:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "locnorm", Name: "places_requests_total"}, []string{"operation", "outcome"}),
		PlacesCache:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "locnorm", Name: "places_cache_total"}, []string{"operation", "result"}),
		PlacesAPIDuration:       prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "locnorm", Name: "places_api_duration_seconds"}, []string{"operation"}),
		PlacesEnabled:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "locnorm", Name: "places_enabled"}),
	}
}
