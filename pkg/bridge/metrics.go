// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsBridge holds Prometheus metrics for foreign calls.
type metricsBridge struct {
	once sync.Once

	calls      *prometheus.CounterVec
	errors     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	queueDepth prometheus.Gauge
}

var bridgeMetrics metricsBridge

func (m *metricsBridge) init() {
	m.once.Do(func() {
		m.calls = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "strata_bridge_calls_total",
			Help: "Foreign calls issued to the Strata bridge",
		}, []string{"op"})
		m.errors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "strata_bridge_errors_total",
			Help: "Bridge errors by kind (not_open, bridge, invalid_response)",
		}, []string{"kind"})

		buckets := []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
		m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "strata_bridge_call_seconds",
			Help:    "Duration of foreign calls, excluding queue wait",
			Buckets: buckets,
		}, []string{"op"})
		m.queueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "strata_bridge_queue_depth",
			Help: "Calls waiting for the bridge worker",
		})

		prometheus.MustRegister(m.calls, m.errors, m.duration, m.queueDepth)
	})
}

func recordCall(op string, elapsed time.Duration) {
	bridgeMetrics.init()
	bridgeMetrics.calls.WithLabelValues(op).Inc()
	bridgeMetrics.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func recordError(kind Kind) {
	bridgeMetrics.init()
	bridgeMetrics.errors.WithLabelValues(kind.String()).Inc()
}

func queueDepthAdd(delta float64) {
	bridgeMetrics.init()
	bridgeMetrics.queueDepth.Add(delta)
}
