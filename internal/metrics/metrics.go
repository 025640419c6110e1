// Package metrics holds the Prometheus collectors for HTTP traffic and claims.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	claimsTotal         prometheus.Counter
	claimPointsTotal    prometheus.Counter
	claimPoints         prometheus.Histogram
	claimFailures       *prometheus.CounterVec
}

// New registers all collectors on reg. Pass a fresh registry per server so
// tests can build several servers in one process.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		reg: reg,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		claimsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_claims_total",
			Help: "Successful point claims",
		}),
		claimPointsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_claim_points_total",
			Help: "Points awarded across all claims",
		}),
		claimPoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "leaderboard_claim_points",
			Help:    "Distribution of points awarded per claim",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
		claimFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leaderboard_claim_failures_total",
				Help: "Failed point claims by reason",
			},
			[]string{"reason"},
		),
	}
	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.claimsTotal,
		m.claimPointsTotal,
		m.claimPoints,
		m.claimFailures,
	)
	return m
}

func (m *Metrics) ObserveRequest(path, method string, status int, d time.Duration) {
	m.httpRequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(path, method).Observe(d.Seconds())
}

func (m *Metrics) ClaimSucceeded(points int) {
	m.claimsTotal.Inc()
	m.claimPointsTotal.Add(float64(points))
	m.claimPoints.Observe(float64(points))
}

func (m *Metrics) ClaimFailed(reason string) {
	m.claimFailures.WithLabelValues(reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
