package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsTotal   *prometheus.CounterVec
	TransactionDuration *prometheus.HistogramVec
	LockWait            prometheus.Histogram

	// User and account metrics
	UsersCreated    prometheus.Counter
	AccountsCreated prometheus.Counter

	// Outbox metrics
	OutboxPublished     prometheus.Counter
	OutboxPublishErrors prometheus.Counter
	OutboxPending       prometheus.Gauge

	// Ledger integrity metrics
	LedgerMismatches prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transaction metrics
		TransactionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_transactions_total",
				Help: "Total number of transactions by type and final status",
			},
			[]string{"type", "status"},
		),
		TransactionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "walletledger_transaction_duration_seconds",
				Help:    "Duration of transaction operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		),
		LockWait: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletledger_lock_wait_seconds",
			Help:    "Time spent acquiring the user and clearing account row locks",
			Buckets: prometheus.DefBuckets,
		}),

		// User and account metrics
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_users_created_total",
			Help: "Total number of users created",
		}),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		// Outbox metrics
		OutboxPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_outbox_published_total",
			Help: "Total number of outbox events published",
		}),
		OutboxPublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_outbox_publish_errors_total",
			Help: "Total number of outbox publish failures",
		}),
		OutboxPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "walletledger_outbox_pending",
			Help: "Pending outbox events seen in the last publisher pass",
		}),

		// Ledger integrity metrics
		LedgerMismatches: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "walletledger_ledger_mismatched_accounts",
			Help: "Accounts whose stored balance diverged from the entry projection in the last consistency check",
		}),
	}
}
