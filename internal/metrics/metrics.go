// Package metrics defines Prometheus metrics for hypermedia processing.
//
// Metric naming follows Prometheus conventions:
//   - hypermedia_ prefix for all custom metrics
//   - _total suffix for counters
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Link discovery results
const (
	ResultFound   = "found"
	ResultMissing = "missing"
	ResultError   = "error"
)

// Handler adapter styles
const (
	AdapterRoute  = "route"
	AdapterLegacy = "legacy"
)

var (
	// Registry holds every hypermedia metric. It is separate from the global
	// default registry so embedding applications choose where to expose it.
	Registry = prometheus.NewRegistry()

	// RepresentationsTotal counts responses written per adapter, media type and converter.
	RepresentationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hypermedia_representations_total",
			Help: "Total representations written by handler adapter, media type and converter.",
		},
		[]string{"adapter", "media_type", "converter"},
	)

	// NegotiationFailuresTotal counts requests no converter could serve.
	NegotiationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hypermedia_negotiation_failures_total",
			Help: "Total requests rejected because no converter matched the requested media type.",
		},
		[]string{"adapter", "reason"},
	)

	// LinkDiscoveriesTotal counts link lookups by result.
	LinkDiscoveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hypermedia_link_discoveries_total",
			Help: "Total link discovery lookups by result.",
		},
		[]string{"result"},
	)

	// ResourceEventsTotal counts lifecycle events of the served resources.
	ResourceEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hypermedia_resource_events_total",
			Help: "Total resource lifecycle events by type.",
		},
		[]string{"type"},
	)

	// TraversalHopsTotal counts links followed by the hypermedia client.
	TraversalHopsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hypermedia_traversal_hops_total",
			Help: "Total links followed by the traversal client.",
		},
	)
)

func init() {
	Registry.MustRegister(
		RepresentationsTotal,
		NegotiationFailuresTotal,
		LinkDiscoveriesTotal,
		TraversalHopsTotal,
		ResourceEventsTotal,
	)
}
