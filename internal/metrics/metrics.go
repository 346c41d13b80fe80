// Package metrics provides Prometheus metrics collection for the laundry service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// OptimizationsTotal counts optimizations by outcome.
	OptimizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laundry_optimizations_total",
			Help: "Total number of order optimizations",
		},
		[]string{"status"},
	)

	// OptimizationDuration tracks how long an optimization takes end to end.
	OptimizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "laundry_optimization_duration_seconds",
			Help:    "Order optimization duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
	)

	// QuoteTotalCost observes the total cost of successful quotes.
	QuoteTotalCost = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "laundry_quote_total_cost",
			Help:    "Total cost of priced orders",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// CatalogVersion exposes the version of the catalog currently in use.
	CatalogVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "laundry_catalog_version",
			Help: "Version of the active catalog, 0 for the built-in one",
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
		[]string{"cache"},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
		[]string{"cache"},
	)

	// LogEntriesTotal counts request and audit log entries by outcome.
	LogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laundry_log_entries_total",
			Help: "Total number of log entries sent to the log store",
		},
		[]string{"result"},
	)

	// CircuitBreakerState exposes each breaker's state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// RateLimitedTotal counts rejected requests by limiter.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordOptimization records the outcome and duration of an optimization.
func RecordOptimization(duration time.Duration, status string) {
	OptimizationDuration.Observe(duration.Seconds())
	OptimizationsTotal.WithLabelValues(status).Inc()
}

// RecordQuoteTotal observes the total cost of a quote.
func RecordQuoteTotal(total float64) {
	QuoteTotalCost.Observe(total)
}

// SetCatalogVersion records the active catalog version.
func SetCatalogVersion(version int) {
	CatalogVersion.Set(float64(version))
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(cache string, size, capacity int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
	CacheCapacity.WithLabelValues(cache).Set(float64(capacity))
}

// RecordLogEntry records the outcome of sending a log entry to the log store.
func RecordLogEntry(result string) {
	LogEntriesTotal.WithLabelValues(result).Inc()
}

// SetCircuitBreakerState records the state of the named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordRateLimited records a request rejected by the named limiter.
func RecordRateLimited(limiter string) {
	RateLimitedTotal.WithLabelValues(limiter).Inc()
}
