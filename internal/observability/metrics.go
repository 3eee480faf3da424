// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package observability holds the Prometheus collectors shared across the
// service. Collectors register with the default registry on import.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by route pattern, method and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kuzenim_http_requests_total",
		Help: "Total HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// HTTPRequestDuration records request latency by route pattern and method.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kuzenim_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// LikeTogglesTotal counts ledger outcomes: liked, unliked, race_recovered.
	LikeTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kuzenim_like_toggles_total",
		Help: "Total like toggles by outcome",
	}, []string{"outcome"})

	// LikeDriftCorrected counts article counters repaired by reconciliation.
	LikeDriftCorrected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kuzenim_like_drift_corrected_total",
		Help: "Total article like counters corrected by reconciliation",
	})

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kuzenim_rate_limited_total",
		Help: "Total requests rejected by the rate limiter by scope",
	}, []string{"scope"})

	// ValkeyErrorsTotal counts Valkey errors by operation.
	ValkeyErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kuzenim_valkey_errors_total",
		Help: "Total Valkey errors by operation",
	}, []string{"operation"})
)

// ObserveRequest records one completed HTTP request.
func ObserveRequest(route, method, status string, start time.Time) {
	HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
}
