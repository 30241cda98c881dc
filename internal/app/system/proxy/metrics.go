package proxy

import (
	"strconv"
	"time"

	"github.com/dalemusser/dealerhub/internal/app/system/upstream"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts proxied calls. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the proxy collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dealerhub",
			Subsystem: "proxy",
			Name:      "requests_total",
			Help:      "Proxied API requests by endpoint and status code returned to the browser.",
		}, []string{"endpoint", "code"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dealerhub",
			Subsystem: "proxy",
			Name:      "failures_total",
			Help:      "Upstream calls that produced no usable answer, by reason.",
		}, []string{"endpoint", "reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dealerhub",
			Subsystem: "proxy",
			Name:      "duration_seconds",
			Help:      "Time spent handling proxied API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	reg.MustRegister(m.requests, m.failures, m.duration)
	return m
}

func (m *Metrics) observe(endpoint string, code int, start time.Time) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (m *Metrics) fail(endpoint string, reason upstream.FailureReason) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(endpoint, string(reason)).Inc()
}
