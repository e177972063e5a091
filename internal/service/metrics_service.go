package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the push channel.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	wsClients       prometheus.Gauge
	broadcastTotal  prometheus.Counter
	broadcastErrors prometheus.Counter
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

	wsClients := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_connected_clients",
		Help: "Number of currently connected push-channel clients",
	})

	broadcastTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_broadcasts_total",
		Help: "Total number of frames broadcast to all clients",
	})

	broadcastErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_broadcast_errors_total",
		Help: "Total number of error payloads broadcast",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, wsClients, broadcastTotal, broadcastErrors, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		wsClients:       wsClients,
		broadcastTotal:  broadcastTotal,
		broadcastErrors: broadcastErrors,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records latency and count for a completed request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ClientConnected increments the connected-client gauge.
func (s *MetricsService) ClientConnected() {
	if s != nil {
		s.wsClients.Inc()
	}
}

// ClientDisconnected decrements the connected-client gauge.
func (s *MetricsService) ClientDisconnected() {
	if s != nil {
		s.wsClients.Dec()
	}
}

// RecordBroadcast counts a broadcast frame; isError marks error payloads.
func (s *MetricsService) RecordBroadcast(isError bool) {
	if s == nil {
		return
	}
	s.broadcastTotal.Inc()
	if isError {
		s.broadcastErrors.Inc()
	}
}
