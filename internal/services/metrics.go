package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// enrichmentDegraded counts read-path lookups that fell back to placeholders
	enrichmentDegraded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamehub_enrichment_degraded_total",
		Help: "Read-path lookups that failed and were replaced by placeholder values",
	}, []string{"lookup"})

	lookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gamehub_store_lookup_duration_seconds",
		Help:    "Store lookup duration in seconds, per attempt",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"lookup"})

	lookupRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamehub_store_lookup_retries_total",
		Help: "Read lookups retried after a transient store failure",
	}, []string{"lookup"})

	toggleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamehub_toggle_total",
		Help: "Like/follow toggles by target and outcome",
	}, []string{"target", "result"})

	reportTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamehub_reports_total",
		Help: "Report submissions by outcome",
	}, []string{"result"})
)
