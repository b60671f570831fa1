// Package metrics exposes the server's Prometheus gauges/counters/
// histograms, grounded on the observability layer of
// iamvalenciia-kick-game-stream's internal/api/observability.go:
// bounded-cardinality metrics only, no per-player or per-room labels.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "warpbattle_tick_duration_seconds",
		Help:    "Time spent computing one room simulation tick.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
	})

	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "warpbattle_active_rooms",
		Help: "Number of rooms currently running.",
	})

	ActivePlayers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "warpbattle_active_players",
		Help: "Number of connected players across all rooms.",
	})

	EffectsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warpbattle_effects_emitted_total",
		Help: "Total effect events appended to any room's tick log.",
	})

	ConnectionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warpbattle_connections_rejected_total",
		Help: "Connections rejected before completing the websocket handshake.",
	}, []string{"reason"}) // bounded: "rate_limit", "ws_limit", "bad_params"

	PlayersDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warpbattle_players_dropped_total",
		Help: "Players removed from a room after a failed snapshot send.",
	}, []string{"reason"}) // bounded: "send_failed", "read_closed"

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "warpbattle_http_request_duration_seconds",
		Help:    "Latency of the HTTP introspection endpoints.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"}) // bounded: fixed set of routes, not raw URLs
)

// RecordTick observes one tick's wall-clock compute duration.
func RecordTick(d time.Duration) {
	TickDuration.Observe(d.Seconds())
}
