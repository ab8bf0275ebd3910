package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// 管线业务指标
	GradedResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_graded_responses_total",
			Help: "Total number of graded student responses",
		},
		[]string{"mode"},
	)

	ComposedPlans = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_composed_plans_total",
			Help: "Total number of composed study plans",
		},
	)

	EngagementScoreGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pipeline_engagement_score",
			Help: "Last computed engagement score per level bucket",
		},
		[]string{"level"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(GradedResponses)
	prometheus.MustRegister(ComposedPlans)
	prometheus.MustRegister(EngagementScoreGauge)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
