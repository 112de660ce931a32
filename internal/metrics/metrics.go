package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds portal collectors and the gatherer exposed on /metrics.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	ordersCreated   prometheus.Counter
	ordersCancelled prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers collectors in the default Prometheus registry.
func New() *Metrics {
	return newWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewWithRegistry registers collectors in an isolated registry.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	return newWithRegistry(reg, reg)
}

func newWithRegistry(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return &Metrics{
		httpRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "studio_http_requests_total",
			Help: "Total number of HTTP requests handled",
		}, []string{"method", "route", "status"}),
		httpDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "studio_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "studio_orders_created_total",
			Help: "Total number of orders placed",
		}),
		ordersCancelled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "studio_orders_cancelled_total",
			Help: "Total number of orders moved to CANCELLED",
		}),
		gatherer: gatherer,
	}
}

// ObserveHTTPRequest records a handled request. Route is the matched pattern, not the raw path.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// OrderCreated increments created orders counter.
func (m *Metrics) OrderCreated() {
	m.ordersCreated.Inc()
}

// OrderCancelled increments cancelled orders counter.
func (m *Metrics) OrderCancelled() {
	m.ordersCancelled.Inc()
}

// Handler exposes collected metrics in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
