package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements every hook interface with Prometheus metrics.
type PrometheusHooks struct {
	searches        *prometheus.CounterVec
	searchDuration  *prometheus.HistogramVec
	searchExpanded  *prometheus.HistogramVec
	loads           *prometheus.CounterVec
	loadDuration    prometheus.Histogram
	datasetPeople   prometheus.Gauge
	datasetProds    prometheus.Gauge
	cacheOps        *prometheus.CounterVec
	cacheBytes      prometheus.Counter
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewPrometheusHooks registers frontier's metrics with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontier",
			Name:      "searches_total",
			Help:      "Searches run, by engine and outcome.",
		}, []string{"engine", "status"}),
		searchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "frontier",
			Name:      "search_duration_seconds",
			Help:      "Search latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}, []string{"engine"}),
		searchExpanded: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "frontier",
			Name:      "search_expanded_states",
			Help:      "States expanded per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"engine"}),
		loads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontier",
			Name:      "dataset_loads_total",
			Help:      "Dataset loads, by origin and outcome.",
		}, []string{"origin", "status"}),
		loadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "frontier",
			Name:      "dataset_load_duration_seconds",
			Help:      "Dataset load latency.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		datasetPeople: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "frontier",
			Name:      "dataset_people",
			Help:      "People in the most recently loaded dataset.",
		}),
		datasetProds: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "frontier",
			Name:      "dataset_productions",
			Help:      "Productions in the most recently loaded dataset.",
		}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontier",
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes, by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "frontier",
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontier",
			Name:      "http_requests_total",
			Help:      "API requests, by method, route and status code.",
		}, []string{"method", "route", "code"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "frontier",
			Name:      "http_request_duration_seconds",
			Help:      "API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnSearchStart(context.Context, string) {}

func (h *PrometheusHooks) OnSearchComplete(_ context.Context, engine string, expanded int, d time.Duration, err error) {
	h.searches.WithLabelValues(engine, status(err)).Inc()
	h.searchDuration.WithLabelValues(engine).Observe(d.Seconds())
	if err == nil {
		h.searchExpanded.WithLabelValues(engine).Observe(float64(expanded))
	}
}

func (h *PrometheusHooks) OnLoadStart(context.Context, string) {}

func (h *PrometheusHooks) OnLoadComplete(_ context.Context, _ string, people, productions int, cached bool, d time.Duration, err error) {
	origin := "source"
	if cached {
		origin = "cache"
	}
	h.loads.WithLabelValues(origin, status(err)).Inc()
	if err != nil {
		return
	}
	h.loadDuration.Observe(d.Seconds())
	h.datasetPeople.Set(float64(people))
	h.datasetProds.Set(float64(productions))
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ SearchHooks  = (*PrometheusHooks)(nil)
	_ DatasetHooks = (*PrometheusHooks)(nil)
	_ CacheHooks   = (*PrometheusHooks)(nil)
	_ HTTPHooks    = (*PrometheusHooks)(nil)
)
