// Package rfmetrics defines the Prometheus metrics exposed by the admin
// HTTP sidecar: chains uploaded, crack attempts, cache hits/misses, and
// compute-limiter saturation. Chains built by the CLI table builder are
// not counted.
package rfmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every metric rainbowforge's server publishes.
type Metrics struct {
	ChainsUploaded      *prometheus.CounterVec
	CrackAttempts       *prometheus.CounterVec
	CacheHits           *prometheus.CounterVec
	CacheMisses         *prometheus.CounterVec
	ComputePermitsInUse prometheus.Gauge
	ComputePermitsTotal prometheus.Gauge
}

// New registers and returns a Metrics instance against reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ChainsUploaded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rainbowforge_chains_uploaded_total",
				Help: "Total number of rainbow chains accepted by upload requests.",
			},
			[]string{"algorithm"},
		),
		CrackAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rainbowforge_crack_attempts_total",
				Help: "Total number of crack requests handled, by outcome.",
			},
			[]string{"outcome"},
		),
		CacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rainbowforge_cache_hits_total",
				Help: "Cracked-password cache hits, by algorithm.",
			},
			[]string{"algorithm"},
		),
		CacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rainbowforge_cache_misses_total",
				Help: "Cracked-password cache misses, by algorithm.",
			},
			[]string{"algorithm"},
		),
		ComputePermitsInUse: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rainbowforge_compute_permits_in_use",
			Help: "Compute-limiter permits currently held.",
		}),
		ComputePermitsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rainbowforge_compute_permits_total",
			Help: "Compute-limiter total permit capacity.",
		}),
	}
}
