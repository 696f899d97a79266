package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analysis run.
type Metrics struct {
	DatasetsLoaded *prometheus.CounterVec   // label: dataset
	SamplesRead    *prometheus.CounterVec   // label: dataset
	SamplesMissing *prometheus.CounterVec   // label: dataset
	LoadDuration   *prometheus.HistogramVec // label: dataset

	ParametersComputed prometheus.Counter
	AnalysisRunning    prometheus.Gauge
	AnalysisDuration   prometheus.Histogram
}

// NewMetrics creates and registers all analysis metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetsLoaded,
		m.SamplesRead,
		m.SamplesMissing,
		m.LoadDuration,
		m.ParametersComputed,
		m.AnalysisRunning,
		m.AnalysisDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "icephys",
			Name:      "datasets_loaded_total",
			Help:      "Campaign datasets loaded, by dataset name.",
		}, []string{"dataset"}),
		SamplesRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "icephys",
			Name:      "samples_read_total",
			Help:      "Observation rows read from each dataset.",
		}, []string{"dataset"}),
		SamplesMissing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "icephys",
			Name:      "samples_missing_total",
			Help:      "Missing values excluded from aggregation, by dataset.",
		}, []string{"dataset"}),
		LoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "icephys",
			Name:      "dataset_load_duration_seconds",
			Help:      "Time spent loading each dataset.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"dataset"}),
		ParametersComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "icephys",
			Name:      "parameters_computed_total",
			Help:      "Derived parameters computed across runs.",
		}),
		AnalysisRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "icephys",
			Name:      "analysis_running",
			Help:      "1 while an analysis pass is active, 0 otherwise.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "icephys",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete load-reduce-compute pass.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
