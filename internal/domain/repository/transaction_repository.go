package repository

import (
	"context"

	"github.com/salonpoint/pos-api/internal/domain/entity"
)

// TransactionRepository defines the interface for persisted sale records.
// Insert is the only write the wizard performs against the store.
type TransactionRepository interface {
	// Insert writes a single transaction row. The write is idempotent on
	// TransactionID so a failed finalize can be retried safely.
	Insert(ctx context.Context, tx *entity.Transaction) error
	// GetByTransactionID returns a transaction by its operator-facing ID,
	// or nil if none exists.
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error)
}
