package repository

import (
	"context"
	"errors"

	"github.com/salonpoint/pos-api/internal/domain/entity"
	domainRepo "github.com/salonpoint/pos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

// Insert writes the transaction row. Conflicts on transaction_id are
// ignored, which makes a retried finalize after an ambiguous failure a
// no-op instead of a duplicate sale.
func (r *transactionRepository) Insert(ctx context.Context, tx *entity.Transaction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "transaction_id"}},
			DoNothing: true,
		}).
		Create(tx).Error
}

func (r *transactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.db.WithContext(ctx).First(&tx, "transaction_id = ?", transactionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tx, err
}
