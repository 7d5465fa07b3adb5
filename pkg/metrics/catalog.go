package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records upstream catalog request outcomes.
type CatalogMetrics struct {
	duration       *prometheus.HistogramVec
	fallbacks      *prometheus.CounterVec
	droppedRecords prometheus.Counter
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of upstream catalog requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "outcome"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fallback_total",
		Help: "Listings served from the offline fallback catalog.",
	}, []string{"reason"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_dropped_records_total",
		Help: "Upstream product records dropped during normalization.",
	})
	reg.MustRegister(duration, fallbacks, dropped)
	return &CatalogMetrics{
		duration:       duration,
		fallbacks:      fallbacks,
		droppedRecords: dropped,
	}
}

// ObserveRequest records the duration of one upstream call.
func (c *CatalogMetrics) ObserveRequest(endpoint, outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(endpoint), normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncFallback increments the fallback counter for the given reason.
func (c *CatalogMetrics) IncFallback(reason string) {
	if c == nil || c.fallbacks == nil {
		return
	}
	c.fallbacks.WithLabelValues(normalizeLabel(reason)).Inc()
}

// AddDroppedRecords counts records discarded by the normalizer.
func (c *CatalogMetrics) AddDroppedRecords(n int) {
	if c == nil || c.droppedRecords == nil || n <= 0 {
		return
	}
	c.droppedRecords.Add(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
