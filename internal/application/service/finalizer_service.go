package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonpoint/pos-api/internal/domain/entity"
	"github.com/salonpoint/pos-api/internal/domain/enum"
	"github.com/salonpoint/pos-api/internal/domain/repository"
	"github.com/salonpoint/pos-api/pkg/apperror"
	"github.com/salonpoint/pos-api/pkg/metrics"
	"github.com/salonpoint/pos-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// FinalizerService generates receipt identifiers and performs the single
// atomic persist step that turns an invoice session into a transaction row.
type FinalizerService struct {
	txRepo    repository.TransactionRepository
	orPrefix  string
	txnPrefix string
	now       func() time.Time
}

// NewFinalizerService creates a new finalizer service
func NewFinalizerService(txRepo repository.TransactionRepository, orPrefix, txnPrefix string) *FinalizerService {
	return &FinalizerService{
		txRepo:    txRepo,
		orPrefix:  orPrefix,
		txnPrefix: txnPrefix,
		now:       time.Now,
	}
}

// EnsureIdentifiers lazily generates the OR number and transaction ID the
// first time the session reaches the Overview stage. Generation is
// idempotent per session: fields that are already set are never touched,
// so going Back and returning to Overview keeps the same identifiers.
func (s *FinalizerService) EnsureIdentifiers(sess *entity.InvoiceSession) {
	t := s.now()
	if sess.ORNumber == nil {
		or := utils.GenerateReceiptNumber(s.orPrefix, t)
		sess.ORNumber = &or
	}
	if sess.TransactionID == nil {
		id := utils.GenerateReceiptNumber(s.txnPrefix, t)
		sess.TransactionID = &id
	}
}

// Finalize copies the completed session into a Transaction and persists it.
// The insert is idempotent on the transaction ID, so a failed write can be
// retried without re-entering customer or service data. The session itself
// is not modified here; the wizard advances the stage only after the write
// has definitely succeeded.
func (s *FinalizerService) Finalize(ctx context.Context, sess *entity.InvoiceSession, staffID uuid.UUID) (*entity.Transaction, error) {
	if !sess.StageComplete(enum.StageOverview) {
		return nil, apperror.NewBadRequestError("Payment must be confirmed before finalizing")
	}
	if sess.Service == nil || sess.Customer == nil || sess.ORNumber == nil || sess.TransactionID == nil {
		return nil, apperror.NewBadRequestError("Session is missing data required to finalize")
	}

	tx := &entity.Transaction{
		TransactionID:   *sess.TransactionID,
		ORNumber:        *sess.ORNumber,
		ServiceID:       sess.Service.ID,
		CustomerName:    sess.Customer.Name,
		CustomerPhone:   sess.Customer.Phone,
		CustomerGender:  sess.Customer.Gender,
		CustomerCity:    sess.Customer.City,
		PaymentMethod:   sess.Payment.Method,
		DiscountPercent: sess.Payment.DiscountPercent,
		DiscountAmount:  sess.Payment.DiscountAmount,
		BaseAmount:      sess.Payment.BaseAmount,
		TotalAmount:     sess.Payment.TotalAmount,
		CouponCode:      sess.Payment.CouponCode,
		CreatedBy:       staffID,
		TransactionDate: s.now(),
	}

	if err := s.txRepo.Insert(ctx, tx); err != nil {
		logrus.WithError(err).WithField("transaction_id", tx.TransactionID).Error("Failed to persist transaction")
		return nil, apperror.NewCollaboratorError("Transaction persist", err)
	}

	metrics.TransactionsFinalized.Inc()
	logrus.WithFields(logrus.Fields{
		"transaction_id": tx.TransactionID,
		"or_number":      tx.ORNumber,
		"total":          tx.TotalAmount.StringFixed(2),
	}).Info("Transaction finalized")

	return tx, nil
}
