package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "partsflow_provider_searches_total",
		Help: "Distributor provider searches by provider and outcome.",
	}, []string{"provider", "outcome"})

	providerSearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "partsflow_provider_search_duration_seconds",
		Help:    "Distributor provider search latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})

	bomRealizations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "partsflow_bom_realizations_total",
		Help: "BOM realization runs by status.",
	}, []string{"status"})
)

func observeProviderSearch(provider string, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	providerSearches.WithLabelValues(provider, outcome).Inc()
	providerSearchDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}
