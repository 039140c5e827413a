package monitoring

import (
	"strconv"
	"sync"
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

	// EvaluationCounter 每次运行成绩评估引擎计数一次
	EvaluationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grading_evaluations_total",
			Help: "Total number of grade evaluations",
		},
		[]string{"variant", "group_by"},
	)

	EvaluatedRecords = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grading_evaluated_records",
			Help:    "Number of ledger rows fed into one evaluation",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
		[]string{"variant"},
	)

	QueryErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_query_errors_total",
			Help: "Total number of failed report queries",
		},
		[]string{"operation"},
	)

	initOnce sync.Once
)

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(EvaluationCounter)
		prometheus.MustRegister(EvaluatedRecords)
		prometheus.MustRegister(QueryErrors)
	})
}

// ObserveEvaluation 记录一次评估及其输入规模
func ObserveEvaluation(variant, groupBy string, records int) {
	EvaluationCounter.WithLabelValues(variant, groupBy).Inc()
	EvaluatedRecords.WithLabelValues(variant).Observe(float64(records))
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
