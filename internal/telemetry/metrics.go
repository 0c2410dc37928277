package telemetry

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	ScheduleRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ad_schedule_runs_total",
		Help: "Ad schedule executions by outcome (completed, failed, retried)",
	}, []string{"outcome"})

	ScheduleConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ad_schedule_conflicts_total",
		Help: "Schedule requests rejected by the conflict checker",
	})
)

// Handler exposes the /metrics HTTP handler with a singleton registry.
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			RequestDuration,
			ScheduleRunsTotal,
			ScheduleConflicts,
		)
	})
	return promhttp.Handler()
}

// Middleware records per-request counters and latency. Uses the route
// template, not the raw path, to keep label cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
