package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every Prometheus collector of the service.
type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	dbQueries     *prometheus.HistogramVec
	dbOpenConns   prometheus.Gauge
	dbInUseConns  prometheus.Gauge
	dbIdleConns   prometheus.Gauge
	dbWaitCount   prometheus.Gauge
	bookings      *prometheus.CounterVec
	schemaDrift   *prometheus.CounterVec
	hoursDefaults prometheus.Counter
}

// New creates collectors registered in the default Prometheus registry.
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry creates collectors registered in reg.
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "HTTP requests by route, method and status.",
			ConstLabels: labels,
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by route and method.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"route", "method"}),
		dbQueries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database call latency by operation and outcome.",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool.",
			ConstLabels: labels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use.",
			ConstLabels: labels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool.",
			ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: labels,
		}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_attempts_total",
			Help:        "Booking attempts by kind (service, deal) and outcome.",
			ConstLabels: labels,
		}, []string{"kind", "outcome"}),
		schemaDrift: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "storage_schema_drift_total",
			Help:        "Columns stripped from insert payloads after the store rejected them.",
			ConstLabels: labels,
		}, []string{"table", "column"}),
		hoursDefaults: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "opening_hours_defaulted_total",
			Help:        "Slot lookups that fell back to the default opening window.",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.dbQueries,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.bookings,
		m.schemaDrift,
		m.hoursDefaults,
	)

	return m
}

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveQuery records one database call.
func (m *Metrics) ObserveQuery(operation string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueries.WithLabelValues(operation, status).Observe(elapsed.Seconds())
}

// SetPoolStats publishes connection pool gauges.
func (m *Metrics) SetPoolStats(open, inUse, idle int, waitCount int64) {
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}

// ObserveBooking counts a booking attempt outcome.
func (m *Metrics) ObserveBooking(kind, outcome string) {
	m.bookings.WithLabelValues(kind, outcome).Inc()
}

// ObserveSchemaDrift counts a column stripped from an insert payload.
func (m *Metrics) ObserveSchemaDrift(table, column string) {
	m.schemaDrift.WithLabelValues(table, column).Inc()
}

// ObserveHoursDefaulted counts a fallback to the default opening window.
func (m *Metrics) ObserveHoursDefaulted() {
	m.hoursDefaults.Inc()
}
