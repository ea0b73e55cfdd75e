package health

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HttpDuration *prometheus.HistogramVec
	HttpRequests *prometheus.CounterVec
}

// NewMetrics creates the request collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HttpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "api",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HttpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "api",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}
	reg.MustRegister(m.HttpDuration, m.HttpRequests)
	return m
}

// Middleware labels requests by route pattern so path ids do not explode
// the series count. Unmatched routes share one label.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		}

		m.HttpRequests.With(labels).Inc()
		m.HttpDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}
