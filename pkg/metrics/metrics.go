package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Register-level counters exposed on /metrics.
var (
	TransactionsFinalized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_transactions_finalized_total",
		Help: "Number of transactions successfully persisted by the finalizer.",
	})

	TransactionsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_transactions_cancelled_total",
		Help: "Number of in-flight sessions discarded by cancel.",
	})

	ReceiptsPrinted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_receipts_printed_total",
		Help: "Number of receipts sent to the thermal printer.",
	})

	ReceiptsExported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_receipts_exported_total",
		Help: "Number of receipts exported as PDF.",
	})
)
