package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "winds_aloft"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// refresh pipeline and the query API.
type Metrics struct {
	Refreshes        *prometheus.CounterVec // labels: outcome={success,error}
	StationsDecoded  prometheus.Counter
	TierDecodeErrors *prometheus.CounterVec // labels: altitude
	MessagesProduced prometheus.Counter
	PipelineRunning  prometheus.Gauge
	LastRefresh      prometheus.Gauge

	// Refresh cycle metrics.
	RefreshDuration    prometheus.Histogram
	StationsPerRefresh prometheus.Histogram

	APIRequests *prometheus.CounterVec // labels: route, status
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Refreshes,
		m.StationsDecoded,
		m.TierDecodeErrors,
		m.MessagesProduced,
		m.PipelineRunning,
		m.LastRefresh,
		m.RefreshDuration,
		m.StationsPerRefresh,
		m.APIRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Table refresh cycles by outcome.",
		}, []string{"outcome"}),
		StationsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stations_decoded_total",
			Help:      "Total station rows decoded from fetched tables.",
		}),
		TierDecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tier_decode_errors_total",
			Help:      "Tier cells that passed the presence test but failed to decode.",
		}, []string{"altitude"}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total forecast messages written to the sink topic.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the refresh pipeline is active, 0 when shut down.",
		}),
		LastRefresh: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_successful_refresh_timestamp_seconds",
			Help:      "Unix time of the last successful refresh.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-decode-publish cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		StationsPerRefresh: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stations_per_refresh",
			Help:      "Number of stations decoded per refresh.",
			Buckets:   []float64{1, 10, 50, 100, 150, 200, 250, 300},
		}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Query API requests by route and status code.",
		}, []string{"route", "status"}),
	}
}
