// Package metrics declares the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CurrencyConversions counts Convert calls by outcome: identity, converted, unknown, error.
	CurrencyConversions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finwallet_currency_conversions_total",
			Help: "Total number of currency conversions by outcome",
		},
		[]string{"status"},
	)

	// RateCacheLookups counts rate cache lookups by result: hit, miss, error.
	RateCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finwallet_rate_cache_lookups_total",
			Help: "Total number of exchange rate cache lookups by result",
		},
		[]string{"result"},
	)

	// Aggregations counts balance aggregations by outcome: ok, skipped, failed.
	Aggregations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finwallet_balance_aggregations_total",
			Help: "Total number of wallet balance aggregations by outcome",
		},
		[]string{"outcome"},
	)

	// HTTPRequestDuration observes request latency per route template.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finwallet_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"method", "route", "status"},
	)
)
