package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/salonpoint/pos-api/internal/domain/entity"
	"github.com/salonpoint/pos-api/internal/domain/enum"
	"github.com/salonpoint/pos-api/internal/domain/repository"
	"github.com/salonpoint/pos-api/pkg/apperror"
	"github.com/salonpoint/pos-api/pkg/metrics"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// StageChange is broadcast to subscribers whenever the wizard moves between
// stages or the session is reset. The shell uses it to enable/disable its
// navigation while a transaction is in progress.
type StageChange struct {
	Stage      enum.Stage `json:"stage"`
	InProgress bool       `json:"in_progress"`
	Version    int64      `json:"version"`
}

// TabState reports whether a wizard tab may be activated from the current
// session state. Tab enablement is a pure function of the session, never a
// separately tracked flag.
type TabState struct {
	Stage   enum.Stage `json:"stage"`
	Enabled bool       `json:"enabled"`
}

// WizardService orchestrates the five-stage invoice wizard: stage order,
// gating, cancellation and reset. Stages move strictly forward one at a
// time; Back is always allowed and never destroys entered data.
type WizardService struct {
	store     *SessionStore
	catalog   repository.CatalogRepository
	calc      *PaymentCalculator
	finalizer *FinalizerService

	subMu sync.Mutex
	subs  []chan StageChange
}

// NewWizardService creates a new wizard service
func NewWizardService(
	store *SessionStore,
	catalog repository.CatalogRepository,
	calc *PaymentCalculator,
	finalizer *FinalizerService,
) *WizardService {
	return &WizardService{
		store:     store,
		catalog:   catalog,
		calc:      calc,
		finalizer: finalizer,
	}
}

// GetState returns a snapshot of the current session
func (s *WizardService) GetState() *entity.InvoiceSession {
	return s.store.Current()
}

// IsTransactionInProgress reports whether a transaction is being built.
// The shell disables navigation away from the wizard while this is true,
// which is what prevents a second concurrent session from being started.
func (s *WizardService) IsTransactionInProgress() bool {
	return s.store.Current().Service != nil
}

// TabStates computes which wizard tabs are currently selectable:
// the active stage, the previous stage (Back), the next stage when the
// active one is complete, and Receipt only once the sale is finalized.
func (s *WizardService) TabStates(sess *entity.InvoiceSession) []TabState {
	states := make([]TabState, 0, 5)
	for st := enum.StageSelectService; st <= enum.StageReceipt; st++ {
		enabled := false
		switch {
		case st == sess.Stage:
			enabled = true
		case st == sess.Stage.Prev() && sess.Stage != enum.StageReceipt:
			enabled = true
		case st == sess.Stage.Next() && sess.StageComplete(sess.Stage):
			enabled = st != enum.StageReceipt || sess.Finalized()
		}
		states = append(states, TabState{Stage: st, Enabled: enabled})
	}
	return states
}

// Subscribe registers a listener for stage changes. The channel is buffered;
// a slow listener misses updates rather than blocking the wizard.
func (s *WizardService) Subscribe() <-chan StageChange {
	ch := make(chan StageChange, 8)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

func (s *WizardService) notify(sess *entity.InvoiceSession) {
	change := StageChange{
		Stage:      sess.Stage,
		InProgress: sess.Service != nil,
		Version:    sess.Version,
	}
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

func requireStage(sess *entity.InvoiceSession, stage enum.Stage) error {
	if sess.Stage != stage {
		return apperror.NewBadRequestError("Operation not allowed in stage " + sess.Stage.String())
	}
	return nil
}

// SelectService looks up a service and its bill of materials and attaches
// them to the session. Catalog failures are surfaced as collaborator errors
// and leave the stage incomplete so the operator can retry.
func (s *WizardService) SelectService(ctx context.Context, serviceID uuid.UUID) (*entity.InvoiceSession, error) {
	if err := requireStage(s.store.Current(), enum.StageSelectService); err != nil {
		return nil, err
	}

	svc, err := s.catalog.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, apperror.NewCollaboratorError("Catalog lookup", err)
	}
	if svc == nil || !svc.Available {
		return nil, apperror.NewNotFoundError("Service")
	}

	products, err := s.catalog.ListProductsForService(ctx, serviceID)
	if err != nil {
		return nil, apperror.NewCollaboratorError("Catalog lookup", err)
	}

	sess, err := s.store.Mutate(func(sess *entity.InvoiceSession) error {
		sess.Service = svc
		sess.Products = products
		sess.Payment.BaseAmount = svc.Price
		discount, total, derr := s.calc.ApplyDiscount(sess.Payment.BaseAmount, sess.Payment.DiscountPercent)
		if derr != nil {
			return derr
		}
		sess.Payment.DiscountAmount = discount
		sess.Payment.TotalAmount = total
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(sess)
	return sess, nil
}

// SetCustomer captures customer details. Only valid while the Customer
// stage is active; gender and city are optional.
func (s *WizardService) SetCustomer(c entity.Customer) (*entity.InvoiceSession, error) {
	if err := requireStage(s.store.Current(), enum.StageCustomer); err != nil {
		return nil, err
	}
	return s.store.Mutate(func(sess *entity.InvoiceSession) error {
		sess.Customer = &c
		return nil
	})
}

// SetDiscount applies a manual discount percentage. Changing the percentage
// after the payment was confirmed re-arms confirmation: the operator must
// confirm again against the new total. A manual discount clears any coupon.
func (s *WizardService) SetDiscount(percent int) (*entity.InvoiceSession, error) {
	if err := requireStage(s.store.Current(), enum.StagePayment); err != nil {
		return nil, err
	}
	return s.store.Mutate(func(sess *entity.InvoiceSession) error {
		return s.applyDiscount(sess, percent, "")
	})
}

// ApplyCoupon resolves a coupon code and applies its discount. Unknown
// codes leave the current discount untouched and surface an invalid-coupon
// error to the operator.
func (s *WizardService) ApplyCoupon(code string) (*entity.InvoiceSession, error) {
	if err := requireStage(s.store.Current(), enum.StagePayment); err != nil {
		return nil, err
	}
	percent, ok := s.calc.ResolveCoupon(code)
	if !ok {
		return nil, apperror.NewInvalidCouponError(code)
	}
	return s.store.Mutate(func(sess *entity.InvoiceSession) error {
		return s.applyDiscount(sess, percent, code)
	})
}

// ClearCoupon removes the coupon and any discount it carried
func (s *WizardService) ClearCoupon() (*entity.InvoiceSession, error) {
	if err := requireStage(s.store.Current(), enum.StagePayment); err != nil {
		return nil, err
	}
	return s.store.Mutate(func(sess *entity.InvoiceSession) error {
		return s.applyDiscount(sess, 0, "")
	})
}

// applyDiscount recomputes the payment figures for a new discount percent.
// A change to the percent is the sole reconfirmation trigger: confirmation
// is re-armed only when the resulting percent differs from the current one.
func (s *WizardService) applyDiscount(sess *entity.InvoiceSession, percent int, couponCode string) error {
	discount, total, err := s.calc.ApplyDiscount(sess.Payment.BaseAmount, percent)
	if err != nil {
		return err
	}
	if percent != sess.Payment.DiscountPercent {
		sess.PaymentConfirmed = false
	}
	sess.Payment.DiscountPercent = percent
	sess.Payment.DiscountAmount = discount
	sess.Payment.TotalAmount = total
	sess.Payment.CouponCode = couponCode
	if !sess.Payment.AmountTendered.IsZero() {
		sess.Payment.Change = s.calc.ComputeChange(total, sess.Payment.AmountTendered)
	}
	return nil
}

// Tender records the cash amount received from the customer and computes
// the change. Tender is frozen once payment is confirmed.
func (s *WizardService) Tender(amount decimal.Decimal) (*entity.InvoiceSession, error) {
	cur := s.store.Current()
	if err := requireStage(cur, enum.StagePayment); err != nil {
		return nil, err
	}
	if cur.PaymentConfirmed {
		return nil, apperror.NewBadRequestError("Payment already confirmed; change the discount to re-open it")
	}
	if amount.IsNegative() {
		return nil, apperror.NewValidationError("amount", "must not be negative")
	}
	return s.store.Mutate(func(sess *entity.InvoiceSession) error {
		sess.Payment.AmountTendered = amount.Round(2)
		sess.Payment.Change = s.calc.ComputeChange(sess.Payment.TotalAmount, sess.Payment.AmountTendered)
		return nil
	})
}

// ConfirmPayment freezes the tendered amount and change for the receipt.
// It is only reachable while the change is non-negative.
func (s *WizardService) ConfirmPayment() (*entity.InvoiceSession, error) {
	cur := s.store.Current()
	if err := requireStage(cur, enum.StagePayment); err != nil {
		return nil, err
	}
	change := s.calc.ComputeChange(cur.Payment.TotalAmount, cur.Payment.AmountTendered)
	if change.IsNegative() {
		return nil, apperror.NewInsufficientPaymentError(
			cur.Payment.TotalAmount.StringFixed(2),
			cur.Payment.AmountTendered.StringFixed(2),
		)
	}
	return s.store.Mutate(func(sess *entity.InvoiceSession) error {
		sess.Payment.Change = change
		sess.PaymentConfirmed = true
		return nil
	})
}

// EnterStage moves the wizard to the target stage. Allowed moves:
// one stage forward when the current stage is complete, or one stage back.
// Entering Receipt happens only through Finalize; returning to
// SelectService from further ahead happens only through Cancel.
func (s *WizardService) EnterStage(target enum.Stage) (*entity.InvoiceSession, error) {
	if !target.IsValid() {
		return nil, apperror.NewValidationError("stage", "unknown stage")
	}

	cur := s.store.Current()
	switch {
	case target == cur.Stage:
		return cur, nil
	case cur.Finalized():
		return nil, apperror.NewBadRequestError("Transaction is completed; start a new one or cancel")
	case target == cur.Stage.Prev() && cur.Stage != enum.StageSelectService:
		// Back: always allowed, never destroys entered data.
	case target == cur.Stage.Next():
		if !cur.StageComplete(cur.Stage) {
			return nil, s.incompleteError(cur)
		}
		if target == enum.StageReceipt {
			return nil, apperror.NewBadRequestError("Finalize the transaction to reach the receipt")
		}
	default:
		return nil, apperror.NewBadRequestError("Stage " + target.String() + " is not reachable from " + cur.Stage.String())
	}

	sess, err := s.store.Mutate(func(sess *entity.InvoiceSession) error {
		sess.Stage = target
		if target == enum.StageCustomer && sess.Customer == nil {
			sess.Customer = &entity.Customer{}
		}
		// Re-entering the payment stage after confirmation re-arms it:
		// the operator must confirm again before finalizing.
		if target == enum.StagePayment && sess.PaymentConfirmed {
			sess.PaymentConfirmed = false
		}
		if target == enum.StageOverview {
			s.finalizer.EnsureIdentifiers(sess)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(sess)
	return sess, nil
}

// incompleteError explains which requirement blocks the forward move
func (s *WizardService) incompleteError(sess *entity.InvoiceSession) error {
	switch sess.Stage {
	case enum.StageSelectService:
		return apperror.NewValidationError("service", "a service must be selected")
	case enum.StageCustomer:
		return apperror.NewValidationError("customer", "customer name and phone are required")
	case enum.StageOverview:
		return apperror.NewValidationError("payment", "payment must be confirmed and cover the total")
	default:
		return apperror.NewBadRequestError("Stage " + sess.Stage.String() + " is not complete")
	}
}

// Back moves one stage backward
func (s *WizardService) Back() (*entity.InvoiceSession, error) {
	return s.EnterStage(s.store.Current().Stage.Prev())
}

// Cancel discards the in-flight session and returns the wizard to
// SelectService. Once a service has been selected, cancelling loses entered
// data, so the operator must confirm it; the navigation lock is released
// either way.
func (s *WizardService) Cancel(confirmed bool) (*entity.InvoiceSession, error) {
	cur := s.store.Current()
	if cur.Service != nil && !confirmed {
		return nil, apperror.NewConflictError("Cancelling discards the transaction in progress; confirmation required")
	}
	if cur.Service != nil && !cur.Finalized() {
		metrics.TransactionsCancelled.Inc()
	}
	sess := s.store.Reset()
	logrus.Info("Invoice session cancelled")
	s.notify(sess)
	return sess, nil
}

// StartNewTransaction resets the wizard for the next sale. Unlike Cancel it
// needs no confirmation, but it is only available from the receipt stage of
// a completed transaction.
func (s *WizardService) StartNewTransaction() (*entity.InvoiceSession, error) {
	cur := s.store.Current()
	if !cur.Finalized() {
		return nil, apperror.NewBadRequestError("No completed transaction; use cancel instead")
	}
	sess := s.store.Reset()
	s.notify(sess)
	return sess, nil
}

// Finalize persists the completed session as a transaction and advances to
// the receipt stage. On persist failure the session is left untouched and
// the operator may retry; the insert is idempotent on the transaction ID.
func (s *WizardService) Finalize(ctx context.Context, staffID uuid.UUID) (*entity.InvoiceSession, *entity.Transaction, error) {
	cur := s.store.Current()
	if err := requireStage(cur, enum.StageOverview); err != nil {
		return nil, nil, err
	}

	tx, err := s.finalizer.Finalize(ctx, cur, staffID)
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.store.Mutate(func(sess *entity.InvoiceSession) error {
		sess.Stage = enum.StageReceipt
		d := tx.TransactionDate
		sess.TransactionDate = &d
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.notify(sess)
	return sess, tx, nil
}
