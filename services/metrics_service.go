package services

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests per route",
		},
		[]string{"route"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	errorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_errors_total",
			Help: "Total HTTP requests answered with status >= 400",
		},
		[]string{"route"},
	)
)

// 本地计数器，健康检查接口直接读取，避免反查Prometheus指标
var (
	totalRequests atomic.Int64
	totalErrors   atomic.Int64
)

func init() {
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(errorCount)
}

// IncrementRequestCount 增加请求计数
func IncrementRequestCount(route string) {
	requestCount.WithLabelValues(route).Inc()
	totalRequests.Add(1)
}

// RecordRequestDuration 记录请求处理时间
func RecordRequestDuration(route string, seconds float64) {
	requestDuration.WithLabelValues(route).Observe(seconds)
}

// IncrementErrorCount 增加出错请求计数
func IncrementErrorCount(route string) {
	errorCount.WithLabelValues(route).Inc()
	totalErrors.Add(1)
}

// GetTotalRequestCount 获取总请求数
func GetTotalRequestCount() int64 {
	return totalRequests.Load()
}

// GetTotalErrorCount 获取出错请求数
func GetTotalErrorCount() int64 {
	return totalErrors.Load()
}
