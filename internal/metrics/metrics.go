package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the notifier's Prometheus collectors
type Metrics struct {
	EventsTotal    *prometheus.CounterVec
	RegistryCalls  *prometheus.CounterVec
	RegistryErrors *prometheus.CounterVec
	Skips          *prometheus.CounterVec
}

// Skip reasons recorded on the skips counter
const (
	SkipUnrecognizedAction = "unrecognized_action"
	SkipContainerNotFound  = "container_not_found"
	SkipUnroutable         = "unroutable"
)

// New creates the notifier metrics and registers them with reg.
// Pass a private registry in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "notifier",
				Name:      "events_total",
				Help:      "Lifecycle events processed, by action.",
			},
			[]string{"action"},
		),
		RegistryCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "notifier",
				Name:      "registry_calls_total",
				Help:      "Registry calls attempted, by operation.",
			},
			[]string{"operation"},
		),
		RegistryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "notifier",
				Name:      "registry_errors_total",
				Help:      "Registry calls that failed, by operation.",
			},
			[]string{"operation"},
		),
		Skips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "notifier",
				Name:      "skips_total",
				Help:      "Events that produced no registry call, by reason.",
			},
			[]string{"reason"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.EventsTotal, m.RegistryCalls, m.RegistryErrors, m.Skips)
	}

	return m
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
