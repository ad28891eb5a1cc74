// Package monitoring exposes the prometheus metrics of the site backend.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecoindus_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecoindus_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"method", "route"},
	)

	// Estimate metrics
	EstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecoindus_estimates_total",
			Help: "Total number of carbon estimates computed",
		},
		[]string{"status"},
	)

	EstimatedCarbonTonnes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ecoindus_estimated_carbon_tonnes",
			Help:    "Distribution of estimated carbon savings in tonnes per month",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// Consultation metrics
	ConsultationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecoindus_consultations_total",
			Help: "Total number of consultation submissions",
		},
		[]string{"project_type", "status"},
	)

	// Rate limiting metrics
	RateLimitExceeded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecoindus_rate_limit_exceeded_total",
			Help: "Total number of rate limit exceeded events",
		},
		[]string{"route"},
	)
)

// RecordHTTPRequest records one served HTTP request
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordEstimate records the outcome of an estimate
func RecordEstimate(carbonSaved float64, err error) {
	if err != nil {
		EstimatesTotal.WithLabelValues("error").Inc()
		return
	}
	EstimatesTotal.WithLabelValues("success").Inc()
	EstimatedCarbonTonnes.Observe(carbonSaved)
}

// RecordConsultation records the outcome of a consultation submission
func RecordConsultation(projectType string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ConsultationsTotal.WithLabelValues(projectType, status).Inc()
}
