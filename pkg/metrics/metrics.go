package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-коллекторов сервиса
// Все методы безопасны для вызова на nil-получателе, поэтому при выключенных
// метриках в use case можно передавать nil
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	BookingsTotal        *prometheus.CounterVec
	MirrorWriteFailures  *prometheus.CounterVec
	AvailabilityFailOpen *prometheus.CounterVec
	CalendarSyncEvents   *prometheus.CounterVec
}

// New регистрирует коллекторы в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует коллекторы в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUseConnections: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConnections: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		BookingsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_total",
			Help:        "Booking submissions by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		MirrorWriteFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "mirror_write_failures_total",
			Help:        "Calendar mirror writes that failed after the reservation was stored",
			ConstLabels: labels,
		}, []string{"kind"}),
		AvailabilityFailOpen: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_fail_open_total",
			Help:        "Availability lookups that ignored occupancy because the source failed",
			ConstLabels: labels,
		}, []string{"source"}),
		CalendarSyncEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_sync_events_total",
			Help:        "Reconciliation results per reservation",
			ConstLabels: labels,
		}, []string{"result"}),
	}
}

// ObserveHTTPRequest фиксирует завершённый HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность SQL-запроса
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauge-метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.DBOpenConnections.Set(float64(open))
	m.DBInUseConnections.Set(float64(inUse))
	m.DBIdleConnections.Set(float64(idle))
	m.DBWaitCount.Set(float64(waitCount))
}

func (m *Metrics) IncBooking(outcome string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncMirrorWriteFailure(kind string) {
	if m == nil {
		return
	}
	m.MirrorWriteFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncAvailabilityFailOpen(source string) {
	if m == nil {
		return
	}
	m.AvailabilityFailOpen.WithLabelValues(source).Inc()
}

func (m *Metrics) IncCalendarSync(result string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.CalendarSyncEvents.WithLabelValues(result).Add(float64(n))
}
