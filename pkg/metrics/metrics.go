// Package metrics holds the Prometheus collectors for turn routing and tool calls.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	turns        *prometheus.CounterVec
	fallbacks    prometheus.Counter
	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "travelbot_turns_total",
				Help: "Conversation turns by the route that handled them.",
			},
			[]string{"route"},
		),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travelbot_fallbacks_total",
			Help: "Turns answered with the fallback apology.",
		}),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "travelbot_tool_calls_total",
				Help: "Handler invocations by tool and envelope status.",
			},
			[]string{"tool", "status"},
		),
		toolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "travelbot_tool_duration_seconds",
				Help:    "Handler latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.turns, m.fallbacks, m.toolCalls, m.toolDuration)
	}
	return m
}

func (m *Metrics) ObserveTurn(route string) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(route).Inc()
}

func (m *Metrics) ObserveFallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

func (m *Metrics) ObserveTool(tool, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool, status).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}
