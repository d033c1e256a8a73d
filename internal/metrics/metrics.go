// Package metrics collects Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the HTTP middleware and notification dispatcher report to.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordNotificationDelivered(notificationType string)
	RecordNotificationFailed(notificationType string)
	RecordEmailSent(ok bool)
}

type Collector struct {
	requests       *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	delivered      *prometheus.CounterVec
	deliveryFailed *prometheus.CounterVec
	emails         *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devsa_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "devsa_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devsa_notifications_delivered_total",
			Help: "Notification events delivered, by type.",
		}, []string{"type"}),
		deliveryFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devsa_notification_delivery_failures_total",
			Help: "Notification event delivery failures, by type.",
		}, []string{"type"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devsa_emails_total",
			Help: "Notification emails by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(c.requests, c.latency, c.delivered, c.deliveryFailed, c.emails)

	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordNotificationDelivered(notificationType string) {
	c.delivered.WithLabelValues(notificationType).Inc()
}

func (c *Collector) RecordNotificationFailed(notificationType string) {
	c.deliveryFailed.WithLabelValues(notificationType).Inc()
}

func (c *Collector) RecordEmailSent(ok bool) {
	outcome := "sent"
	if !ok {
		outcome = "failed"
	}
	c.emails.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used where metrics are optional.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordNotificationDelivered(string)               {}
func (Nop) RecordNotificationFailed(string)                  {}
func (Nop) RecordEmailSent(bool)                             {}
