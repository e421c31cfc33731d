// Package metrics exposes the service counters in the Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "scmboard"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inserted        *prometheus.CounterVec
	deleted         *prometheus.CounterVec
	records         *prometheus.GaugeVec
	cache           *prometheus.CounterVec
	throttled       prometheus.Counter
}

// New registers the collectors on a fresh registry, so several routers can
// live in one process (tests do that).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return NewWith(reg, reg)
}

func NewWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: gatherer,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of handled HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		inserted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "inserted_records_total",
				Help:      "Total number of records appended to a dataset",
			},
			[]string{"dataset"},
		),
		deleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "deleted_records_total",
				Help:      "Total number of records removed from a dataset",
			},
			[]string{"dataset"},
		),
		records: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "records",
				Help:      "Current number of records per dataset",
			},
			[]string{"dataset"},
		),
		cache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "lookups_total",
				Help:      "Response cache lookups by result (hit or miss)",
			},
			[]string{"result"},
		),
		throttled: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "throttled_writes_total",
				Help:      "Writes rejected by the rate limiter",
			},
		),
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) Inserted(dataset string, total int) {
	m.inserted.WithLabelValues(dataset).Inc()
	m.records.WithLabelValues(dataset).Set(float64(total))
}

func (m *Metrics) Deleted(dataset string, total int) {
	m.deleted.WithLabelValues(dataset).Inc()
	m.records.WithLabelValues(dataset).Set(float64(total))
}

func (m *Metrics) SetRecords(dataset string, total int) {
	m.records.WithLabelValues(dataset).Set(float64(total))
}

func (m *Metrics) CacheHit()  { m.cache.WithLabelValues("hit").Inc() }
func (m *Metrics) CacheMiss() { m.cache.WithLabelValues("miss").Inc() }

func (m *Metrics) Throttled() { m.throttled.Inc() }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
