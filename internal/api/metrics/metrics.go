// Package metrics defines and registers all custom Prometheus metrics for the
// carrier rating API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry via promauto at
// package initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rating"

// ── Calculation metrics ───────────────────────────────────────────────────────

// RateCalculationsTotal counts single-carrier calculations by outcome.
// Labels:
//   - rate_structure: structure of the selected card, or "none" when no card was priced
//   - outcome: "priced", "ineligible", "config_error" or "error"
var RateCalculationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calculations_total",
		Help:      "Total number of rate calculations, by rate structure and outcome.",
	},
	[]string{"rate_structure", "outcome"},
)

// RateCalculationDuration measures a calculation from fetch to assembled quote.
var RateCalculationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "calculation_duration_seconds",
		Help:      "Duration of a rate calculation including configuration fetches.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// ShopCarriers observes how many carriers one shopping request fans out to.
var ShopCarriers = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "shop_carriers",
		Help:      "Number of carriers evaluated per rate shopping request.",
		Buckets:   []float64{1, 2, 5, 10, 20, 50},
	},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheLookupsTotal counts configuration cache lookups.
// Labels:
//   - kind: "carrier", "rate_cards" or "eligibility"
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of carrier configuration cache lookups, by kind and result.",
	},
	[]string{"kind", "result"},
)
