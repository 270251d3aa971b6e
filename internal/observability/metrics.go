package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// simulation service.
type Metrics struct {
	SimulationsCompleted prometheus.Counter
	InvalidParams        prometheus.Counter
	SimulationDuration   prometheus.Histogram
	RecommendedCapacity  prometheus.Histogram

	// Result publishing metrics.
	ResultsPublished  prometheus.Counter
	PublishErrors     prometheus.Counter
	PublishingEnabled prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SimulationsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainharvest",
			Name:      "simulations_completed_total",
			Help:      "Total simulation runs that completed successfully.",
		}),
		InvalidParams: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainharvest",
			Name:      "invalid_params_total",
			Help:      "Total simulation requests rejected during parameter validation.",
		}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rainharvest",
			Name:      "simulation_duration_seconds",
			Help:      "Duration of a complete generate-convert-size pass.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		RecommendedCapacity: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rainharvest",
			Name:      "recommended_capacity_liters",
			Help:      "Distribution of recommended tank capacities across runs.",
			Buckets:   []float64{100, 500, 1000, 5000, 10_000, 50_000, 100_000, 500_000},
		}),
		ResultsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainharvest",
			Name:      "results_published_total",
			Help:      "Total sizing results written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainharvest",
			Name:      "publish_errors_total",
			Help:      "Total failures publishing sizing results.",
		}),
		PublishingEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rainharvest",
			Name:      "publishing_enabled",
			Help:      "1 when Kafka result publishing is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.SimulationsCompleted,
		m.InvalidParams,
		m.SimulationDuration,
		m.RecommendedCapacity,
		m.ResultsPublished,
		m.PublishErrors,
		m.PublishingEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SimulationsCompleted: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rainharvest", Name: "simulations_completed_total"}),
		InvalidParams:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rainharvest", Name: "invalid_params_total"}),
		SimulationDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "rainharvest", Name: "simulation_duration_seconds"}),
		RecommendedCapacity:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "rainharvest", Name: "recommended_capacity_liters"}),
		ResultsPublished:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rainharvest", Name: "results_published_total"}),
		PublishErrors:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rainharvest", Name: "publish_errors_total"}),
		PublishingEnabled:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "rainharvest", Name: "publishing_enabled"}),
	}
}
