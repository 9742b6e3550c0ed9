// Package metrics defines the console's Prometheus metrics. All metrics use
// promauto against the default registry and are served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts served HTTP requests by route pattern and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credpanel_http_requests_total",
		Help: "Total HTTP requests served, by route and status code",
	}, []string{"route", "status"})

	// RequestDuration observes request latency by route pattern.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "credpanel_http_request_duration_seconds",
		Help:    "HTTP request duration by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// DeletesTotal counts per-credential delete requests sent to the
	// controller, by outcome.
	DeletesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credpanel_credential_deletes_total",
		Help: "Credential delete requests issued to the controller, by outcome",
	}, []string{"outcome"})
)
