// Package metrics instruments the store with Prometheus. A private registry
// keeps the scrape surface to our own collectors plus the Go runtime and
// process collectors.
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP surface. Path label cardinality is bounded by the route table.
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "store",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	RequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "store",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	ResponseSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "store",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "Response body sizes in bytes.",
		Buckets:   []float64{100, 1_000, 10_000, 100_000, 1_000_000},
	}, []string{"method", "path"})

	// DBQueryDuration is labelled select/insert/update/delete.
	DBQueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "store",
		Subsystem: "db",
		Name:      "query_duration_seconds",
		Help:      "Duration of database queries in seconds.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
	}, []string{"operation"})

	// Catalogue and order business counters.
	ProductsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "catalog",
		Name:      "products_created_total",
		Help:      "Total products created.",
	})
	ProductsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "catalog",
		Name:      "products_deleted_total",
		Help:      "Total products deleted.",
	})

	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "orders",
		Name:      "placed_total",
		Help:      "Total orders placed.",
	})
	OrdersUpdated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "orders",
		Name:      "status_updates_total",
		Help:      "Total order status updates.",
	}, []string{"status"})
	OrdersDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "orders",
		Name:      "deleted_total",
		Help:      "Total orders deleted.",
	})

	// Effectiveness of the Redis read-side cache, per cache key.
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits.",
	}, []string{"key"})
	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses.",
	}, []string{"key"})
)

// DefaultRegistry backs Handler and every collector above.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		ResponseSize,
		DBQueryDuration,
		ProductsCreated,
		ProductsDeleted,
		OrdersPlaced,
		OrdersUpdated,
		OrdersDeleted,
		CacheHits,
		CacheMisses,
	)
}

// Register adds a custom collector to the store registry.
func Register(c prometheus.Collector) error { return DefaultRegistry.Register(c) }

// MustRegister panics when registration fails.
func MustRegister(cs ...prometheus.Collector) { DefaultRegistry.MustRegister(cs...) }

// meter captures status and byte count for the middleware.
type meter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (m *meter) WriteHeader(code int) {
	m.status = code
	m.ResponseWriter.WriteHeader(code)
}

func (m *meter) Write(b []byte) (int, error) {
	n, err := m.ResponseWriter.Write(b)
	m.bytes += n
	return n, err
}

// Middleware observes duration, count, in-flight and response size for
// every request passing through it.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			began := time.Now()

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			m := &meter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(m, r)

			status := strconv.Itoa(m.status)
			RequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(began).Seconds())
			RequestTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
			ResponseSize.WithLabelValues(r.Method, r.URL.Path).Observe(float64(m.bytes))
		})
	}
}

// Handler serves the scrape endpoint for the store registry.
func Handler() http.HandlerFunc {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}).ServeHTTP
}

// ObserveDBQuery times a query from start:
//
//	defer metrics.ObserveDBQuery("select", time.Now())
func ObserveDBQuery(operation string, start time.Time) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
