package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "dashboard_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	fetchTotal   *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	tickLatency  prometheus.Histogram
	lineStatus   *prometheus.CounterVec
)

// Init registers dashboard metrics with the default registry. Observe calls
// before Init are no-ops.
func Init() {
	registerOnce.Do(func() {
		fetchTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "fetch_total",
				Help: "Total upstream fetches by host and result",
			},
			[]string{"host", "result"},
		)
		fetchLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "fetch_latency_seconds",
				Help:    "Upstream fetch latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"host", "result"},
		)
		tickLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "tick_latency_seconds",
				Help:    "Time to build and render one frame",
				Buckets: prometheus.DefBuckets,
			},
		)
		lineStatus = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "lines_total",
				Help: "Display lines produced by source and status",
			},
			[]string{"source", "status"},
		)

		prometheus.MustRegister(fetchTotal, fetchLatency, tickLatency, lineStatus)
	})
}

// ObserveFetch records one upstream request.
func ObserveFetch(host, result string, duration time.Duration) {
	if host == "" {
		host = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if fetchTotal != nil {
		fetchTotal.WithLabelValues(host, result).Inc()
	}
	if fetchLatency != nil {
		fetchLatency.WithLabelValues(host, result).Observe(duration.Seconds())
	}
}

// ObserveTick records how long a tick took.
func ObserveTick(duration time.Duration) {
	if tickLatency != nil {
		tickLatency.Observe(duration.Seconds())
	}
}

// IncLine counts a produced display line.
func IncLine(source, status string) {
	if source == "" {
		source = "unknown"
	}
	if status == "" {
		status = "ok"
	}
	if lineStatus != nil {
		lineStatus.WithLabelValues(source, status).Inc()
	}
}
