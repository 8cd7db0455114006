// internal/monitor/metrics.go

// Package monitor exposes prometheus metrics for the bridge.
package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CyclesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deye_bridge_poll_cycles_total",
		Help: "Poll cycles attempted (breaker-open ticks excluded).",
	})

	CycleFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deye_bridge_poll_failures_total",
		Help: "Poll cycles aborted by a transport, frame or decode error.",
	})

	BreakerOpens = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deye_bridge_breaker_opens_total",
		Help: "Times the circuit breaker opened.",
	})

	CycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "deye_bridge_poll_cycle_duration_seconds",
		Help:    "Wall time of one poll cycle.",
		Buckets: prometheus.DefBuckets,
	})

	RegsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "deye_bridge_registers_loaded",
		Help: "Register specs loaded from the map file.",
	})
)

// Register installs the bridge collectors on the default registry.
// Call once at startup.
func Register() {
	prometheus.MustRegister(
		CyclesTotal,
		CycleFailures,
		BreakerOpens,
		CycleDuration,
		RegsLoaded,
	)
}

// Handler serves the metrics endpoint.
func Handler() http.Handler { return promhttp.Handler() }
