package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics records Square API call outcomes per resource.
type UpstreamMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
	pages    *prometheus.CounterVec
}

// NewUpstreamMetrics registers the upstream metrics on the provided registerer.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of Square API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Square API requests by resource and HTTP status.",
	}, []string{"resource", "status"})
	pages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_pages_total",
		Help: "Pages consumed while following Square pagination cursors.",
	}, []string{"resource"})
	reg.MustRegister(duration, requests, pages)
	return &UpstreamMetrics{
		duration: duration,
		requests: requests,
		pages:    pages,
	}
}

// ObserveRequest records one upstream round trip.
func (m *UpstreamMetrics) ObserveRequest(resource string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	resource = normalizeLabel(resource)
	if m.duration != nil {
		m.duration.WithLabelValues(resource).Observe(elapsed.Seconds())
	}
	if m.requests != nil {
		m.requests.WithLabelValues(resource, strconv.Itoa(status)).Inc()
	}
}

// IncPage counts a consumed pagination page for the resource.
func (m *UpstreamMetrics) IncPage(resource string) {
	if m == nil || m.pages == nil {
		return
	}
	m.pages.WithLabelValues(normalizeLabel(resource)).Inc()
}

func normalizeLabel(resource string) string {
	if resource == "" {
		return "unknown"
	}
	return resource
}
