// Package metrics provides observability for the coordinator.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CommandsTotal counts inbound commands by type, accepted or not.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mafia_commands_total",
		Help: "Inbound room commands by type.",
	}, []string{"command"})

	// CommandErrors counts commands rejected with an error.
	CommandErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mafia_command_errors_total",
		Help: "Room commands rejected with an error, by type.",
	}, []string{"command"})

	// SubscribersActive tracks currently connected view streams.
	SubscribersActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mafia_subscribers_active",
		Help: "Currently connected websocket subscribers.",
	})

	// EventLogIndex exports the next event index of the room log.
	EventLogIndex = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mafia_event_log_next_index",
		Help: "Next index the room event log will assign.",
	})

	// ViewsEmitted counts view projections pushed to subscribers.
	ViewsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mafia_views_emitted_total",
		Help: "Room view projections pushed to subscribers.",
	})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
