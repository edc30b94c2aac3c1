package tui

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SessionMetrics counts terminal play.
//
//   - arcade_game_sessions_total{game}: rounds played to game over
//   - arcade_game_final_score{game}
//   - arcade_ssh_sessions_active
type SessionMetrics struct {
	registry *prometheus.Registry
	rounds   *prometheus.CounterVec
	scores   *prometheus.HistogramVec
	active   prometheus.Gauge
}

// NewSessionMetrics creates the collectors on a private registry.
func NewSessionMetrics() *SessionMetrics {
	const ns = "arcade"
	m := &SessionMetrics{
		registry: prometheus.NewRegistry(),
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "game_sessions_total",
			Help:      "Rounds played to game over.",
		}, []string{"game"}),
		scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "game_final_score",
			Help:      "Score at game over.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}, []string{"game"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "ssh_sessions_active",
			Help:      "Open SSH sessions.",
		}),
	}
	m.registry.MustRegister(
		m.rounds, m.scores, m.active,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RoundFinished records one finished round. It has the shape of the
// scheduler's terminal hook.
func (m *SessionMetrics) RoundFinished(gameID string, score int) {
	m.rounds.WithLabelValues(gameID).Inc()
	m.scores.WithLabelValues(gameID).Observe(float64(score))
}

// Handler serves the registry in the Prometheus text format.
func (m *SessionMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
