package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	pipelineOutcomes *prometheus.CounterVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
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

	pipelineOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mutation_pipeline_outcomes_total",
		Help: "Outcomes of mutation pipeline runs",
	}, []string{"resource", "operation", "outcome"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "list_cache_hits_total",
		Help: "List cache hits",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "list_cache_misses_total",
		Help: "List cache misses",
	})

	registry.MustRegister(requestDuration, requestTotal, pipelineOutcomes, cacheHits, cacheMisses)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		pipelineOutcomes: pipelineOutcomes,
		cacheHits:        cacheHits,
		cacheMisses:      cacheMisses,
	}
}

// Handler exposes the /metrics scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	s.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(method, path, code).Inc()
}

// ObservePipeline records one mutation pipeline outcome. Implements
// pipeline.Observer.
func (s *MetricsService) ObservePipeline(resource, operation, outcome string) {
	s.pipelineOutcomes.WithLabelValues(resource, operation, outcome).Inc()
}

// ObserveCache records a list cache hit or miss.
func (s *MetricsService) ObserveCache(hit bool) {
	if hit {
		s.cacheHits.Inc()
		return
	}
	s.cacheMisses.Inc()
}
