package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "stadium_matchmap"

// Recorder owns the service's Prometheus collectors on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	datasetLoads        *prometheus.CounterVec
	datasetLoadDuration prometheus.Histogram
	markerQueries       prometheus.Counter
	markersReturned     prometheus.Histogram
	unresolvedGroups    prometheus.Counter
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(registry)

	return &Recorder{
		registry: registry,
		datasetLoads: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "dataset",
			Name:      "loads_total",
			Help:      "Dataset load attempts by result.",
		}, []string{"result"}),
		datasetLoadDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "dataset",
			Name:      "load_duration_seconds",
			Help:      "Wall time of dataset loads.",
			Buckets:   prometheus.DefBuckets,
		}),
		markerQueries: auto.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "markers",
			Name:      "queries_total",
			Help:      "Marker queries answered from the published dataset.",
		}),
		markersReturned: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "markers",
			Name:      "returned",
			Help:      "Resolved markers per query.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		unresolvedGroups: auto.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "markers",
			Name:      "unresolved_groups_total",
			Help:      "Stadium groups with no stadium or city coordinates.",
		}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func (r *Recorder) ObserveDatasetLoad(result string, duration time.Duration) {
	r.datasetLoads.WithLabelValues(result).Inc()
	r.datasetLoadDuration.Observe(duration.Seconds())
}

func (r *Recorder) ObserveMarkers(resolved, unresolved int) {
	r.markerQueries.Inc()
	r.markersReturned.Observe(float64(resolved))
	r.unresolvedGroups.Add(float64(unresolved))
}

func (r *Recorder) ObserveHTTPRequest(route string, status int, duration time.Duration) {
	r.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
