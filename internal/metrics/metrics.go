// Package metrics provides Prometheus instrumentation for the billing service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ChargesTotal counts ledger charges recorded, partitioned by entry type and outcome.
	ChargesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_charges_total",
		Help: "Total number of charge attempts",
	}, []string{"type", "status"})

	// ChargeAmount observes charged totals in currency units per entry type.
	ChargeAmount = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "billing_charge_amount",
		Help:    "Distribution of charged amounts",
		Buckets: []float64{0.01, 0.1, 1, 5, 10, 50, 100, 500, 1000},
	}, []string{"type"})

	// IdempotentReplays counts requests answered from the idempotency layer.
	IdempotentReplays = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_idempotent_replays_total",
		Help: "Requests served from a previously recorded result",
	}, []string{"source"})

	// ChainVerifications counts ledger chain verification runs by outcome.
	ChainVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_chain_verifications_total",
		Help: "Hash chain verification runs",
	}, []string{"result"})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "billing_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics endpoint handler wrapped for Gin.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware records request count and latency for every route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		// Use the route pattern for the path label to avoid high cardinality.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}
