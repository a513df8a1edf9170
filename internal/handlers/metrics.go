package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskmanager_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskmanager_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(httpRequests)
	prometheus.MustRegister(httpDuration)
}

// metricsMiddleware records request counts and latency labelled by route template.
func metricsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	method := c.Request.Method
	httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
	httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
