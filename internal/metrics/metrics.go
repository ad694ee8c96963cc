// Package metrics provides Prometheus instrumentation for hackmate. It
// exposes a request duration histogram, counters for the matching and
// invite flows, and gauges for live WebSocket state.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration records HTTP handler latency in seconds, labeled by
	// route pattern and status class.
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hackmate_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"route", "status"})

	// CandidatesRanked counts candidates scored per next-card request,
	// labeled by whether the hybrid blend was active.
	CandidatesRanked = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hackmate_candidates_ranked_total",
		Help: "Total number of candidates scored for dashboard cards",
	}, []string{"scoring"}) // scoring = "baseline", "hybrid"

	// InvitesTotal counts invite lifecycle events.
	InvitesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hackmate_invites_total",
		Help: "Total number of invite events",
	}, []string{"event"}) // event = "sent", "accepted", "rejected", "duplicate"

	// WSConnections tracks the current number of active chat WebSocket
	// connections.
	WSConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hackmate_ws_connections",
		Help: "Current number of active chat WebSocket connections",
	})

	// MessagesTotal counts chat messages relayed, labeled by type:
	// "message" for persisted messages, "typing" for ephemeral events.
	MessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hackmate_chat_messages_total",
		Help: "Total number of chat events relayed",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(
		RequestDuration,
		CandidatesRanked,
		InvitesTotal,
		WSConnections,
		MessagesTotal,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
