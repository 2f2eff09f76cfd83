// Package metrics provides Prometheus observability for the API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all registered collectors.
type Metrics struct {
	// HTTP request durations by method, route and status
	RequestDuration *prometheus.HistogramVec

	// Total HTTP requests by method, route and status
	RequestsTotal *prometheus.CounterVec

	// Flag evaluation outcomes by flag key and deciding layer
	FlagEvaluations *prometheus.CounterVec

	// License key activations by outcome
	LicenseActivations *prometheus.CounterVec
}

// New creates a Metrics instance with all collectors registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roadwise_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method, route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),

		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "roadwise_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		FlagEvaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "roadwise_flag_evaluations_total",
			Help: "Feature flag evaluations by flag key, result and deciding layer",
		}, []string{"key", "value", "reason"}),

		LicenseActivations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "roadwise_license_activations_total",
			Help: "License key activation attempts by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
		m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	}
}

// IncrementFlagEvaluation records one flag evaluation outcome.
func (m *Metrics) IncrementFlagEvaluation(key, value, reason string) {
	if m != nil {
		m.FlagEvaluations.WithLabelValues(key, value, reason).Inc()
	}
}

// IncrementLicenseActivation records one activation attempt.
func (m *Metrics) IncrementLicenseActivation(outcome string) {
	if m != nil {
		m.LicenseActivations.WithLabelValues(outcome).Inc()
	}
}
