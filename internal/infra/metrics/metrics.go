// Package metrics exposes Prometheus instrumentation for the CheerLink
// daemon. All collectors are registered on the default registry at init and
// served on /metrics when telemetry is enabled in the config.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cheerlink"

var (
	// HitsTotal counts every drum hit the daemon ingested.
	HitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hits_total",
		Help:      "Total drum hits recorded.",
	})

	// HeatLevel is the current engagement heat level (0-4).
	HeatLevel = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "heat_level",
		Help:      "Current engagement heat level.",
	})

	// WindowHits is the hit count inside the trailing engagement window.
	WindowHits = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "window_hits",
		Help:      "Hits inside the trailing engagement window.",
	})

	// DrawsTotal counts gacha draws by rarity of the drawn item.
	DrawsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gacha_draws_total",
		Help:      "Total gacha draws by rarity.",
	}, []string{"rarity"})

	// MissionsClaimedTotal counts claimed daily missions.
	MissionsClaimedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "missions_claimed_total",
		Help:      "Total daily mission rewards claimed.",
	})

	// FeedbackSentTotal counts haptic commands handed to the transport,
	// labeled by pattern name.
	FeedbackSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_sent_total",
		Help:      "Total haptic feedback commands sent.",
	}, []string{"pattern"})

	// LevelDropsTotal counts confirmed level-down transitions.
	LevelDropsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "level_drops_total",
		Help:      "Total confirmed heat level drops.",
	})
)

// PatternLabel maps a haptic pattern number to its metric label.
func PatternLabel(pattern int) string {
	switch pattern {
	case 0:
		return "score"
	case 1:
		return "chance"
	case 2:
		return "pinch"
	default:
		return "unknown"
	}
}
