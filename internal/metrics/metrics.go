package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "licensepanel"
)

// Panel outcomes
const (
	OutcomeRendered = "rendered"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

var (
	// Panel Metrics
	PanelActivationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "panel_activations_total",
		Help:      "Count of panel activations by how the license stage ended.",
	}, []string{"extension", "outcome"})

	IdentityFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_fallbacks_total",
		Help:      "Count of renders that showed the not-installed notice instead of the server identity.",
	}, []string{"extension"})

	// Host API Metrics
	HostRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "host_request_duration_seconds",
		Help:      "Time taken by requests to the host web API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path", "status"})
)
