// Package metrics exposes Prometheus instruments for the booking and
// notification pipelines plus generic HTTP server metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the registered instruments.
type Metrics struct {
	httpDuration      *prometheus.HistogramVec
	httpInFlight      prometheus.Gauge
	demosBooked       *prometheus.CounterVec
	revenueAttributed *prometheus.CounterVec
	notifications     *prometheus.CounterVec
	unreadGauge       prometheus.Gauge
}

// New registers the instruments with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer allows tests to use an isolated registry.
func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "demopro_http_request_duration_ms",
			Help:    "HTTP request duration in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"endpoint", "status_code"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "demopro_http_in_flight_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		demosBooked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "demopro_demos_booked_total",
			Help: "Total demo bookings created, by location type.",
		}, []string{"location"}),
		revenueAttributed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "demopro_revenue_attributed_total",
			Help: "Total revenue attributed to customer ledgers, by location type.",
		}, []string{"location"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "demopro_notifications_total",
			Help: "Total notifications created, by type.",
		}, []string{"type"}),
		unreadGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "demopro_notifications_unread",
			Help: "Current number of unread notifications.",
		}),
	}

	registerer.MustRegister(
		m.httpDuration,
		m.httpInFlight,
		m.demosBooked,
		m.revenueAttributed,
		m.notifications,
		m.unreadGauge,
	)
	return m
}

// GinMiddleware records request duration and in-flight gauges against the
// route template to keep cardinality low.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		m.httpInFlight.Inc()
		start := time.Now()
		c.Next()
		m.httpInFlight.Dec()

		m.httpDuration.
			WithLabelValues(endpoint, strconv.Itoa(c.Writer.Status())).
			Observe(float64(time.Since(start).Milliseconds()))
	}
}

// ObserveDemoBooked records a booking and its attributed revenue.
func (m *Metrics) ObserveDemoBooked(location string, revenue int64) {
	if m == nil {
		return
	}
	m.demosBooked.WithLabelValues(location).Inc()
	if revenue > 0 {
		m.revenueAttributed.WithLabelValues(location).Add(float64(revenue))
	}
}

// ObserveNotification records a created notification.
func (m *Metrics) ObserveNotification(kind string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind).Inc()
}

// SetUnread mirrors the notification unread counter.
func (m *Metrics) SetUnread(count int64) {
	if m == nil {
		return
	}
	m.unreadGauge.Set(float64(count))
}
