package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the portal's Prometheus collectors.
//
//   - arcade_http_request_duration_seconds{method,path,status}
//   - arcade_http_requests_inflight
//   - arcade_http_request_errors_total{method,path,status}
//   - arcade_scores_submitted_total{game}
//   - arcade_messages_posted_total{game}
//   - arcade_registrations_total
type Metrics struct {
	registry      *prometheus.Registry
	reqDuration   *prometheus.HistogramVec
	reqInflight   prometheus.Gauge
	reqErrors     *prometheus.CounterVec
	scores        *prometheus.CounterVec
	messages      *prometheus.CounterVec
	registrations prometheus.Counter
}

// NewMetrics creates the collectors on a private registry so that several
// servers can live in one process.
func NewMetrics() *Metrics {
	const ns = "arcade"
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "path", "status"}),
		reqInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "http_requests_inflight",
			Help:      "HTTP requests currently being served.",
		}),
		reqErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_request_errors_total",
			Help:      "Requests that ended with a 4xx or 5xx status.",
		}, []string{"method", "path", "status"}),
		scores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "scores_submitted_total",
			Help:      "Score submissions accepted per game.",
		}, []string{"game"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "messages_posted_total",
			Help:      "Message board posts per game.",
		}, []string{"game"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "registrations_total",
			Help:      "Accounts created.",
		}),
	}
	m.registry.MustRegister(
		m.reqDuration, m.reqInflight, m.reqErrors,
		m.scores, m.messages, m.registrations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler records request metrics.
func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.reqInflight.Inc()
		c.Next()
		m.reqInflight.Dec()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		m.reqDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		if c.Writer.Status() >= 400 {
			m.reqErrors.WithLabelValues(method, path, status).Inc()
		}
	}
}

// Endpoint serves the registry in the Prometheus text format.
func (m *Metrics) Endpoint() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
