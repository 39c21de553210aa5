package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes Prometheus metrics for inbound HTTP traffic and the
// recommendation pipeline.
type Collector struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	recommendationsTotal     *prometheus.CounterVec
	completionFailuresTotal  *prometheus.CounterVec
	repairFailuresTotal      prometheus.Counter
	completionDurationsTotal prometheus.Histogram
}

// NewCollector constructs a collector with default histograms/counters.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "finadvise",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "finadvise",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of inbound HTTP requests.",
	}, []string{"method", "path", "status"})

	recommendationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "finadvise",
		Subsystem: "pipeline",
		Name:      "recommendations_total",
		Help:      "Portfolios produced, labeled by provenance.",
	}, []string{"provenance"})

	completionFailuresTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "finadvise",
		Subsystem: "pipeline",
		Name:      "completion_failures_total",
		Help:      "Completion service failures, labeled by failure kind.",
	}, []string{"kind"})

	repairFailuresTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "finadvise",
		Subsystem: "pipeline",
		Name:      "repair_failures_total",
		Help:      "Allocation proposals that could not be repaired within tolerance.",
	})

	completionDurations := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "finadvise",
		Subsystem: "pipeline",
		Name:      "completion_duration_seconds",
		Help:      "Latency distribution for external completion calls.",
		Buckets:   prometheus.DefBuckets,
	})

	for _, c := range []prometheus.Collector{
		requestDuration, requestTotal,
		recommendationsTotal, completionFailuresTotal,
		repairFailuresTotal, completionDurations,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &Collector{
		registry:                 registry,
		requestDuration:          requestDuration,
		requestTotal:             requestTotal,
		recommendationsTotal:     recommendationsTotal,
		completionFailuresTotal:  completionFailuresTotal,
		repairFailuresTotal:      repairFailuresTotal,
		completionDurationsTotal: completionDurations,
	}, nil
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler to record HTTP metrics.
func (c *Collector) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.status)
		path := r.URL.Path

		c.requestTotal.WithLabelValues(r.Method, path, status).Inc()
		c.requestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// RecordRecommendation counts a finalized portfolio by provenance.
func (c *Collector) RecordRecommendation(provenance string) {
	c.recommendationsTotal.WithLabelValues(provenance).Inc()
}

// RecordCompletionFailure counts a classified completion failure.
func (c *Collector) RecordCompletionFailure(kind string) {
	c.completionFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordRepairFailure counts an unrepairable allocation proposal.
func (c *Collector) RecordRepairFailure() {
	c.repairFailuresTotal.Inc()
}

// ObserveCompletionDuration records the latency of a completion call.
func (c *Collector) ObserveCompletionDuration(seconds float64) {
	c.completionDurationsTotal.Observe(seconds)
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
