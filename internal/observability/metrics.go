package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the advisor service.
type Metrics struct {
	SegmentsConsumed prometheus.Counter
	SegmentsRejected prometheus.Counter
	FeedErrors       prometheus.Counter
	FeedRunning      prometheus.Gauge
	SnapshotSize     prometheus.Gauge

	// Chat metrics.
	ChatMessages     *prometheus.CounterVec // labels: intent, category
	ChatReplyLatency prometheus.Histogram

	// Route analysis metrics.
	RouteAnalyses         *prometheus.CounterVec // labels: outcome={ok,no_route,provider_error}
	RouteAnalysisDuration prometheus.Histogram

	// Routing provider metrics.
	DirectionsRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	DirectionsCache       *prometheus.CounterVec // labels: result={hit,miss}
	DirectionsAPIDuration prometheus.Histogram
	DirectionsEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SegmentsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_advisor",
			Name:      "hazard_segments_consumed_total",
			Help:      "Total hazard segments accepted from the prediction feed.",
		}),
		SegmentsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_advisor",
			Name:      "hazard_segments_rejected_total",
			Help:      "Hazard segments dropped for invalid coordinates.",
		}),
		FeedErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_advisor",
			Name:      "hazard_feed_errors_total",
			Help:      "Malformed hazard feed messages skipped.",
		}),
		FeedRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_advisor",
			Name:      "hazard_feed_running",
			Help:      "1 when the hazard feed consumer is active, 0 when shut down.",
		}),
		SnapshotSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_advisor",
			Name:      "hazard_snapshot_size",
			Help:      "Number of hazard segments in the current snapshot.",
		}),
		ChatMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_advisor",
			Name:      "chat_messages_total",
			Help:      "Chat messages classified, by intent and category.",
		}, []string{"intent", "category"}),
		ChatReplyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_advisor",
			Name:      "chat_reply_latency_seconds",
			Help:      "Time from submission to reply delivery, including the typing delay.",
			Buckets:   []float64{0.1, 0.5, 1, 1.5, 2, 3, 5, 10},
		}),
		RouteAnalyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_advisor",
			Name:      "route_analyses_total",
			Help:      "Route risk analyses by outcome.",
		}, []string{"outcome"}),
		RouteAnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_advisor",
			Name:      "route_analysis_duration_seconds",
			Help:      "Duration of a complete fetch-annotate-summarize cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		DirectionsRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_advisor",
			Name:      "directions_requests_total",
			Help:      "Routing provider API requests by outcome.",
		}, []string{"outcome"}),
		DirectionsCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_advisor",
			Name:      "directions_cache_total",
			Help:      "Routing provider cache lookups by result.",
		}, []string{"result"}),
		DirectionsAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_advisor",
			Name:      "directions_api_duration_seconds",
			Help:      "Routing provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		DirectionsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_advisor",
			Name:      "directions_enabled",
			Help:      "1 when live route fetching is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.SegmentsConsumed,
		m.SegmentsRejected,
		m.FeedErrors,
		m.FeedRunning,
		m.SnapshotSize,
		m.ChatMessages,
		m.ChatReplyLatency,
		m.RouteAnalyses,
		m.RouteAnalysisDuration,
		m.DirectionsRequests,
		m.DirectionsCache,
		m.DirectionsAPIDuration,
		m.DirectionsEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SegmentsConsumed:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_advisor", Name: "hazard_segments_consumed_total"}),
		SegmentsRejected:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_advisor", Name: "hazard_segments_rejected_total"}),
		FeedErrors:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_advisor", Name: "hazard_feed_errors_total"}),
		FeedRunning:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_advisor", Name: "hazard_feed_running"}),
		SnapshotSize:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_advisor", Name: "hazard_snapshot_size"}),
		ChatMessages:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_advisor", Name: "chat_messages_total"}, []string{"intent", "category"}),
		ChatReplyLatency:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_advisor", Name: "chat_reply_latency_seconds"}),
		RouteAnalyses:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_advisor", Name: "route_analyses_total"}, []string{"outcome"}),
		RouteAnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_advisor", Name: "route_analysis_duration_seconds"}),
		DirectionsRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_advisor", Name: "directions_requests_total"}, []string{"outcome"}),
		DirectionsCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_advisor", Name: "directions_cache_total"}, []string{"result"}),
		DirectionsAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_advisor", Name: "directions_api_duration_seconds"}),
		DirectionsEnabled:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_advisor", Name: "directions_enabled"}),
	}
}
