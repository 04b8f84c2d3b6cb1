// Package metrics содержит Prometheus-коллекторы сервиса
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec

	ReservationOperations *prometheus.CounterVec
	CalendarSyncEvents    *prometheus.CounterVec
}

// New создает и регистрирует метрики в reg
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		ReservationOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_operations_total",
			Help:        "Reservation lifecycle operations by outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
		CalendarSyncEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_sync_events_total",
			Help:        "Calendar synchronization events by direction and outcome",
			ConstLabels: constLabels,
		}, []string{"direction", "outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBConnections,
		m.ReservationOperations,
		m.CalendarSyncEvents,
	)

	return m
}

// ObserveReservation учитывает результат операции с бронированием
func (m *Metrics) ObserveReservation(operation, outcome string) {
	m.ReservationOperations.WithLabelValues(operation, outcome).Inc()
}

// ObserveSyncEvent учитывает обработанное событие синхронизации календаря
func (m *Metrics) ObserveSyncEvent(direction, outcome string) {
	m.CalendarSyncEvents.WithLabelValues(direction, outcome).Inc()
}

// ObserveDBQuery учитывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, d time.Duration) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveHTTPRequest учитывает HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Nop метрики-заглушка для случаев, когда сбор метрик выключен
type Nop struct{}

func (Nop) ObserveReservation(string, string) {}
func (Nop) ObserveSyncEvent(string, string)   {}
