// Weversync - Weverse Community Cache Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/weversync

// Package metrics defines Prometheus collectors for the sync engine.
// Collectors register on the default registry via promauto; embedders expose
// them with promhttp or scrape them through their own registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheEntities tracks the number of cached entities per kind.
	CacheEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "weversync_cache_entities",
			Help: "Number of cached entities by kind",
		},
		[]string{"kind"},
	)

	// SyncDuration observes full cache build durations.
	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weversync_cache_build_duration_seconds",
			Help:    "Duration of full cache builds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	// UpdateFailures counts incremental update attempts that were downgraded
	// to warnings.
	UpdateFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weversync_incremental_update_failures_total",
			Help: "Incremental notification updates that failed and were logged",
		},
	)

	// NotificationsClassified counts classifier outcomes per bucket.
	NotificationsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weversync_notifications_classified_total",
			Help: "Notification classification outcomes by bucket",
		},
		[]string{"bucket"},
	)

	// CircuitBreakerState tracks circuit breaker state per breaker
	// (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "weversync_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// PollerTicks counts notification poll loop iterations.
	PollerTicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weversync_poller_ticks_total",
			Help: "Notification poll loop iterations",
		},
	)

	// SeenCacheHits and SeenCacheMisses count poller delivery dedupe lookups.
	SeenCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weversync_seen_cache_hits_total",
			Help: "Poller seen-notification cache hits",
		},
	)
	SeenCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weversync_seen_cache_misses_total",
			Help: "Poller seen-notification cache misses",
		},
	)
)
