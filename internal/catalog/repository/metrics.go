package repository

import "github.com/prometheus/client_golang/prometheus"

var (
	circuitState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_catalog_circuit_state",
			Help: "Catalog circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"circuit"},
	)

	cacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_cache_requests_total",
			Help: "Catalog cache lookups by result",
		},
		[]string{"key", "result"},
	)

	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_catalog_upstream_duration_seconds",
			Help:    "Duration of remote catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)
)

func init() {
	prometheus.MustRegister(circuitState)
	prometheus.MustRegister(cacheRequests)
	prometheus.MustRegister(upstreamDuration)
}
