// Package metrics exposes Prometheus collectors for the serving layer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the playback collectors on a private registry so two
// servers in one process never collide.
type Metrics struct {
	registry *prometheus.Registry

	SessionsStarted  prometheus.Counter
	StepEnters       *prometheus.CounterVec
	DirectiveLookups *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chalkboard_sessions_started_total",
			Help: "Total number of playback sessions created",
		}),
		StepEnters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chalkboard_step_enters_total",
				Help: "Total number of step entries, by step type",
			},
			[]string{"step_type"},
		),
		DirectiveLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chalkboard_directive_lookups_total",
				Help: "Directive match outcomes in the annotate endpoint",
			},
			[]string{"outcome"}, // matched | unmatched
		),
	}
	m.registry.MustRegister(m.SessionsStarted, m.StepEnters, m.DirectiveLookups)
	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
