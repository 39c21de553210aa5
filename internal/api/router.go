package api

import (
	"net/http"

	"github.com/finadvise/finadvise/internal/metrics"
)

// NewRouter assembles the HTTP routes, instrumented with the metrics
// collector when one is provided.
func NewRouter(h *Handler, collector *metrics.Collector) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/recommendations", h.RecommendationHandler)
	mux.HandleFunc("/api/health", h.HealthHandler)

	if collector == nil {
		return mux
	}

	mux.Handle("/metrics", collector.Handler())
	return collector.InstrumentHandler(mux)
}
