// Package analytics – Prometheus instrumentation
//
// The engine exposes counters for computations, cache traffic, and fallback
// activations so dashboards can tell cached reads from recomputations and,
// more importantly, spot silent degradation: the whole point of the fallback
// design is that callers never see errors, which makes the fallback counter
// the primary operational signal.
package analytics

import "github.com/prometheus/client_golang/prometheus"

var (
	// kpiComputations counts full recomputations by metric family.
	kpiComputations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_kpi_computations_total",
			Help: "Total number of KPI recomputations by metric family.",
		},
		[]string{"family"},
	)

	// kpiCacheEvents counts cache traffic by family and outcome. "bypass"
	// marks free-text searches, which never touch the cache.
	kpiCacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_kpi_cache_events_total",
			Help: "Cache lookups by metric family and outcome (hit, miss, bypass).",
		},
		[]string{"family", "outcome"},
	)

	// kpiFallbacks counts degradations to synthetic data by cause.
	kpiFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_kpi_fallback_total",
			Help: "Times synthetic fallback data was served, by cause (fetch, compute).",
		},
		[]string{"cause"},
	)

	// kpiDuration measures recomputation latency by family.
	kpiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_kpi_compute_duration_seconds",
			Help:    "Duration of KPI recomputations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8), // 0.5ms..~8s
		},
		[]string{"family"},
	)
)

func init() {
	prometheus.MustRegister(kpiComputations, kpiCacheEvents, kpiFallbacks, kpiDuration)
}
