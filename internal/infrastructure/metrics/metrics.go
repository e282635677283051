package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the ledger core.
type Metrics struct {
	AccountsCreated       prometheus.Counter
	TransactionsCommitted prometheus.Counter
	TransactionsRejected  *prometheus.CounterVec
	PostDuration          prometheus.Histogram
	LockWaitTimeouts      prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgercore_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		TransactionsCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgercore_transactions_committed_total",
			Help: "Total number of committed transactions",
		}),
		TransactionsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgercore_transactions_rejected_total",
				Help: "Total number of rejected transactions by reason",
			},
			[]string{"reason"},
		),
		PostDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgercore_post_duration_seconds",
			Help:    "Duration of transaction posts including lock waits",
			Buckets: prometheus.DefBuckets,
		}),
		LockWaitTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgercore_lock_wait_timeouts_total",
			Help: "Total number of posts abandoned while waiting for account locks",
		}),
	}
}
