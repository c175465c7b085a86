// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the service's Prometheus metrics.
type Collector struct {
	deletions     *prometheus.CounterVec
	registrations prometheus.Counter
	reaperSweeps  prometheus.Counter
	reaperResumed prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketpulse_account_deletions_total",
			Help: "Delete-account operations by outcome.",
		}, []string{"outcome"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketpulse_accounts_registered_total",
			Help: "Successfully registered accounts.",
		}),
		reaperSweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketpulse_reaper_sweeps_total",
			Help: "Deletion reaper sweep iterations.",
		}),
		reaperResumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketpulse_reaper_resumed_total",
			Help: "Pending deletions completed by the reaper.",
		}),
	}
	reg.MustRegister(c.deletions, c.registrations, c.reaperSweeps, c.reaperResumed)
	return c
}

func (c *Collector) RecordDeletionOutcome(outcome string) {
	c.deletions.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

func (c *Collector) RecordReaperSweep(resumed int) {
	c.reaperSweeps.Inc()
	c.reaperResumed.Add(float64(resumed))
}

// Handler returns the HTTP handler serving the registry's metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
