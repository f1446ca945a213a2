// Package metrics holds the Prometheus instruments shared by the storefront
// services. Instruments are created against an explicit registerer so tests
// can use a private registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RPC measures the service's own operation surface.
type RPC struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func NewRPC(reg prometheus.Registerer) *RPC {
	m := &RPC{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpc_requests_total",
				Help: "Total number of RPC operations handled.",
			},
			[]string{"operation", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rpc_request_duration_seconds",
				Help:    "Duration of RPC operation handling in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	reg.MustRegister(m.Requests, m.Duration)
	return m
}

// Remote measures calls made to peer services.
type Remote struct {
	Calls    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func NewRemote(reg prometheus.Registerer) *Remote {
	m := &Remote{
		Calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "remote_calls_total",
				Help: "Total number of calls to peer services.",
			},
			[]string{"peer", "operation", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "remote_call_duration_seconds",
				Help:    "Duration of calls to peer services in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"peer", "operation"},
		),
	}
	reg.MustRegister(m.Calls, m.Duration)
	return m
}

// Propagation counts post-write propagation retries and drops.
type Propagation struct {
	Retried *prometheus.CounterVec
	Dropped *prometheus.CounterVec
}

func NewPropagation(reg prometheus.Registerer) *Propagation {
	m := &Propagation{
		Retried: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propagation_retries_total",
				Help: "Count of retried propagation tasks.",
			},
			[]string{"task"},
		),
		Dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propagation_dropped_total",
				Help: "Count of propagation tasks dropped after exhausting retries.",
			},
			[]string{"task"},
		),
	}
	reg.MustRegister(m.Retried, m.Dropped)
	return m
}
