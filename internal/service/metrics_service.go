package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP layer
// and the scheduling engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	engineOps       *prometheus.CounterVec
	conflictCount   prometheus.Gauge
	historyDepth    prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	engineOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_engine_operations_total",
		Help: "Engine mutations by kind and outcome",
	}, []string{"kind", "outcome"})

	conflictCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_conflicts_current",
		Help: "Conflicts detected against the current allocation set",
	})

	historyDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_undo_history_depth",
		Help: "Undoable operations currently retained",
	})

	registry.MustRegister(requestDuration, requestTotal, engineOps, conflictCount, historyDepth)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		engineOps:       engineOps,
		conflictCount:   conflictCount,
		historyDepth:    historyDepth,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one completed HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if s == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveEngineOp records one engine mutation attempt.
func (s *MetricsService) ObserveEngineOp(kind, outcome string) {
	if s == nil {
		return
	}
	s.engineOps.WithLabelValues(kind, outcome).Inc()
}

// SetConflictCount publishes the current conflict total.
func (s *MetricsService) SetConflictCount(n int) {
	if s == nil {
		return
	}
	s.conflictCount.Set(float64(n))
}

// SetHistoryDepth publishes the current undo depth.
func (s *MetricsService) SetHistoryDepth(n int) {
	if s == nil {
		return
	}
	s.historyDepth.Set(float64(n))
}
