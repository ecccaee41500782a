// Package metrics defines the Prometheus collectors exposed on /metrics.
// Registration happens at import time via promauto against the default
// registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sigma"

// RequestsTotal counts handled HTTP requests by route pattern and status class.
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// RequestDuration measures request handling latency per route pattern.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// AuditEntriesDropped counts audit entries lost to a full queue or a failed
// insert. The primary operation succeeds regardless; this is the only trace
// of the gap.
var AuditEntriesDropped = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_dropped_total",
		Help:      "Total number of audit log entries dropped or lost.",
	},
)

// WorkflowTriggerFailures counts outbound workflow notifications that did not
// reach the webhook endpoint.
var WorkflowTriggerFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workflow_trigger_failures_total",
		Help:      "Total number of failed workflow webhook notifications.",
	},
	[]string{"workflow"},
)
