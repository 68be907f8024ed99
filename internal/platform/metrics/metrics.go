// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics holds the Prometheus collectors exported on /metrics.
//
// Collectors are registered on the default registry at package init through
// promauto. Callers use the Record helpers rather than touching collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// # HTTP

	// HTTPRequestsTotal counts finished requests by route pattern, method and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recetario_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration tracks request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recetario_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recetario_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"backend"},
	)

	// # Taxonomy

	// ExpansionSize tracks how many term ids a descendant expansion returns.
	ExpansionSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recetario_term_expansion_size",
			Help:    "Number of term ids after descendant expansion",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// ExpansionLookups counts hierarchy store round trips made by expansions.
	ExpansionLookups = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recetario_term_expansion_lookups_total",
			Help: "Total number of children lookups issued by descendant expansion",
		},
	)

	// # Media

	// ImageUploadsTotal counts stored recipe images by storage driver and outcome.
	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recetario_image_uploads_total",
			Help: "Total number of recipe image uploads",
		},
		[]string{"driver", "outcome"},
	)
)

// RecordRequest records one finished HTTP request.
func RecordRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RecordExpansion records the size of one expansion and the lookups it needed.
func RecordExpansion(size, lookups int) {
	ExpansionSize.Observe(float64(size))
	ExpansionLookups.Add(float64(lookups))
}

// RecordRateLimited records one rejected request.
func RecordRateLimited(backend string) {
	RateLimitedTotal.WithLabelValues(backend).Inc()
}

// RecordImageUpload records the outcome of one image upload.
func RecordImageUpload(driver string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ImageUploadsTotal.WithLabelValues(driver, outcome).Inc()
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
