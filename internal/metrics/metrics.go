// Package metrics exposes Prometheus counters for the fetch pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchAttempts tracks every adapter attempt, by adapter kind.
	FetchAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scraper_fetch_attempts_total",
		Help: "The total number of fetch attempts, labeled by adapter.",
	}, []string{"adapter"})
	// FetchRejections tracks attempts that failed transport or gating.
	FetchRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scraper_fetch_rejections_total",
		Help: "The total number of rejected fetch attempts, labeled by adapter and reason.",
	}, []string{"adapter", "reason"})
	// AdapterFallbacks counts transitions to the next adapter in the chain.
	AdapterFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_adapter_fallbacks_total",
		Help: "The total number of times an adapter was exhausted and the next one engaged.",
	})
	// PagesAccepted counts pages that passed the acceptance gate.
	PagesAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scraper_pages_accepted_total",
		Help: "The total number of pages accepted, labeled by adapter.",
	}, []string{"adapter"})
	// ReportsBuilt counts completed page reports.
	ReportsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_reports_built_total",
		Help: "The total number of page reports built.",
	})
)
