// Package metrics holds the Prometheus collectors of the ledger service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "splitledger"

// Metrics groups every collector the service records into.
type Metrics struct {
	// RPCRequests counts handled RPCs by procedure and Connect code ("ok" on success).
	RPCRequests *prometheus.CounterVec

	// RPCDuration observes RPC latency in seconds by procedure.
	RPCDuration *prometheus.HistogramVec

	// Notifications counts delivery attempts by outcome ("sent", "failed").
	Notifications *prometheus.CounterVec

	// LedgerMutations counts ledger write operations by operation and error code ("ok" on success).
	LedgerMutations *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RPCRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Handled RPCs by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries by outcome.",
		}, []string{"outcome"}),
		LedgerMutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_mutations_total",
			Help:      "Ledger write operations by operation and result code.",
		}, []string{"operation", "code"}),
	}
}

// NewNop returns collectors registered nowhere, for tests and tools.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
