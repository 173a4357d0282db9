// Package observability provides metrics and tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationRequests counts generation attempts by tool.
	GenerationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_generation_requests_total",
		Help: "Total number of generation requests by tool",
	}, []string{"tool"})

	// GenerationFailures counts failed generations by tool and failure reason.
	GenerationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_generation_failures_total",
		Help: "Total number of failed generation requests by tool and reason",
	}, []string{"tool", "reason"})

	// GenerationLatency records end-to-end generation latency by tool.
	GenerationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_generation_latency_seconds",
		Help:    "Generation request latency in seconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60},
	}, []string{"tool"})

	// QuotaDenials counts requests rejected because the free quota was exhausted.
	QuotaDenials = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_quota_denials_total",
		Help: "Total number of requests denied due to exhausted free usage quota",
	})

	// UsageIncrementFailures counts best-effort usage bumps that failed.
	// Failures here are swallowed, this counter is how they stay visible.
	UsageIncrementFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_usage_increment_failures_total",
		Help: "Total number of failed free usage counter increments",
	})

	// LikeToggles counts like toggle operations by outcome.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_like_toggles_total",
		Help: "Total number of like toggle operations by outcome",
	}, []string{"outcome"})
)
