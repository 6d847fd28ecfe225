package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/salonpoint/pos-api/internal/domain/entity"
	"github.com/salonpoint/pos-api/internal/domain/enum"
	"github.com/salonpoint/pos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	services map[uuid.UUID]*entity.Service
	products map[uuid.UUID][]entity.ServiceProduct
	err      error
}

func (f *fakeCatalog) ListAvailableServices(ctx context.Context) ([]entity.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entity.Service, 0, len(f.services))
	for _, s := range f.services {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeCatalog) GetServiceByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.services[id], nil
}

func (f *fakeCatalog) ListProductsForService(ctx context.Context, serviceID uuid.UUID) ([]entity.ServiceProduct, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products[serviceID], nil
}

type fakeTxRepo struct {
	inserted  []*entity.Transaction
	failsLeft int
	insertErr error
}

func (f *fakeTxRepo) Insert(ctx context.Context, tx *entity.Transaction) error {
	if f.failsLeft > 0 {
		f.failsLeft--
		if f.insertErr == nil {
			return errors.New("connection reset")
		}
		return f.insertErr
	}
	for _, existing := range f.inserted {
		if existing.TransactionID == tx.TransactionID {
			return nil // idempotent on transaction ID
		}
	}
	f.inserted = append(f.inserted, tx)
	return nil
}

func (f *fakeTxRepo) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	for _, tx := range f.inserted {
		if tx.TransactionID == transactionID {
			return tx, nil
		}
	}
	return nil, nil
}

type wizardFixture struct {
	wizard    *WizardService
	catalog   *fakeCatalog
	txRepo    *fakeTxRepo
	serviceID uuid.UUID
	staffID   uuid.UUID
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()

	serviceID := uuid.New()
	catalog := &fakeCatalog{
		services: map[uuid.UUID]*entity.Service{
			serviceID: {
				ID:        serviceID,
				Name:      "Hair Color",
				Category:  "Hair",
				Price:     dec("1000.00"),
				Available: true,
			},
		},
		products: map[uuid.UUID][]entity.ServiceProduct{
			serviceID: {
				{ServiceID: serviceID, ProductName: "Color Cream", Quantity: 1, Price: dec("250.00")},
				{ServiceID: serviceID, ProductName: "Developer", Quantity: 2, Price: dec("80.00")},
			},
		},
	}
	txRepo := &fakeTxRepo{}

	calc := NewPaymentCalculator(CouponTable{"WELCOME10": 10, "VIP20": 20})
	finalizer := NewFinalizerService(txRepo, "OR", "TXN")
	wizard := NewWizardService(NewSessionStore(), catalog, calc, finalizer)

	return &wizardFixture{
		wizard:    wizard,
		catalog:   catalog,
		txRepo:    txRepo,
		serviceID: serviceID,
		staffID:   uuid.New(),
	}
}

// advanceToPayment walks the fixture through service selection and customer
// entry, leaving the wizard at the Payment stage.
func (f *wizardFixture) advanceToPayment(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := f.wizard.SelectService(ctx, f.serviceID)
	require.NoError(t, err)
	_, err = f.wizard.EnterStage(enum.StageCustomer)
	require.NoError(t, err)
	_, err = f.wizard.SetCustomer(entity.Customer{Name: "Maria Santos", Phone: "09171234567", City: "Quezon City"})
	require.NoError(t, err)
	_, err = f.wizard.EnterStage(enum.StagePayment)
	require.NoError(t, err)
}

func TestSelectServiceLocksNavigation(t *testing.T) {
	f := newWizardFixture(t)

	assert.False(t, f.wizard.IsTransactionInProgress())

	sess, err := f.wizard.SelectService(context.Background(), f.serviceID)
	require.NoError(t, err)

	assert.True(t, f.wizard.IsTransactionInProgress())
	assert.Equal(t, "Hair Color", sess.Service.Name)
	assert.Equal(t, "1000.00", sess.Payment.BaseAmount.StringFixed(2))
	assert.Len(t, sess.Products, 2)
}

func TestSelectServiceUnknownService(t *testing.T) {
	f := newWizardFixture(t)

	_, err := f.wizard.SelectService(context.Background(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.False(t, f.wizard.IsTransactionInProgress())
}

func TestSelectServiceCatalogFailureIsRetryable(t *testing.T) {
	f := newWizardFixture(t)
	f.catalog.err = errors.New("catalog down")

	_, err := f.wizard.SelectService(context.Background(), f.serviceID)
	assert.True(t, apperror.IsKind(err, apperror.KindCollaborator))
	assert.Equal(t, enum.StageSelectService, f.wizard.GetState().Stage)

	// Recovery: the same call succeeds once the catalog is back
	f.catalog.err = nil
	_, err = f.wizard.SelectService(context.Background(), f.serviceID)
	assert.NoError(t, err)
}

func TestForwardGating(t *testing.T) {
	f := newWizardFixture(t)

	// Cannot leave SelectService before a service is chosen
	_, err := f.wizard.EnterStage(enum.StageCustomer)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.wizard.SelectService(context.Background(), f.serviceID)
	require.NoError(t, err)
	_, err = f.wizard.EnterStage(enum.StageCustomer)
	require.NoError(t, err)

	// Customer stage requires name and phone
	_, err = f.wizard.EnterStage(enum.StagePayment)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.wizard.SetCustomer(entity.Customer{Name: "Maria Santos"})
	require.NoError(t, err)
	_, err = f.wizard.EnterStage(enum.StagePayment)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.wizard.SetCustomer(entity.Customer{Name: "Maria Santos", Phone: "09171234567"})
	require.NoError(t, err)
	_, err = f.wizard.EnterStage(enum.StagePayment)
	assert.NoError(t, err)
}

func TestStageSkippingRejected(t *testing.T) {
	f := newWizardFixture(t)

	_, err := f.wizard.SelectService(context.Background(), f.serviceID)
	require.NoError(t, err)

	// Jumping two stages ahead is never allowed, complete or not
	_, err = f.wizard.EnterStage(enum.StagePayment)
	require.Error(t, err)
	_, err = f.wizard.EnterStage(enum.StageOverview)
	require.Error(t, err)

	assert.Equal(t, enum.StageSelectService, f.wizard.GetState().Stage)
}

func TestHappyPathWithCoupon(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	f.advanceToPayment(t)

	sess, err := f.wizard.ApplyCoupon("WELCOME10")
	require.NoError(t, err)
	assert.Equal(t, 10, sess.Payment.DiscountPercent)
	assert.Equal(t, "100.00", sess.Payment.DiscountAmount.StringFixed(2))
	assert.Equal(t, "900.00", sess.Payment.TotalAmount.StringFixed(2))
	assert.Equal(t, "WELCOME10", sess.Payment.CouponCode)

	sess, err = f.wizard.Tender(dec("1000.00"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", sess.Payment.Change.StringFixed(2))

	sess, err = f.wizard.ConfirmPayment()
	require.NoError(t, err)
	assert.True(t, sess.PaymentConfirmed)

	sess, err = f.wizard.EnterStage(enum.StageOverview)
	require.NoError(t, err)
	require.NotNil(t, sess.ORNumber)
	require.NotNil(t, sess.TransactionID)

	sess, tx, err := f.wizard.Finalize(ctx, f.staffID)
	require.NoError(t, err)
	assert.Equal(t, enum.StageReceipt, sess.Stage)
	assert.True(t, sess.Finalized())
	assert.NotEmpty(t, tx.ORNumber)
	assert.Equal(t, "900.00", tx.TotalAmount.StringFixed(2))
	assert.Equal(t, "WELCOME10", tx.CouponCode)
	assert.Equal(t, f.staffID, tx.CreatedBy)
	require.Len(t, f.txRepo.inserted, 1)
}

func TestInsufficientPaymentBlocksConfirmation(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	f.advanceToPayment(t)

	_, err := f.wizard.ApplyCoupon("WELCOME10")
	require.NoError(t, err)

	sess, err := f.wizard.Tender(dec("800.00"))
	require.NoError(t, err)
	assert.Equal(t, "-100.00", sess.Payment.Change.StringFixed(2))

	_, err = f.wizard.ConfirmPayment()
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientPayment))

	// Overview itself is enterable without confirmation, but the
	// unconfirmed session cannot be finalized from there
	sess, err = f.wizard.EnterStage(enum.StageOverview)
	require.NoError(t, err)
	assert.False(t, sess.PaymentConfirmed)
	_, _, err = f.wizard.Finalize(ctx, f.staffID)
	require.Error(t, err)
	assert.False(t, f.wizard.GetState().Finalized())

	_, err = f.wizard.Back()
	require.NoError(t, err)
	_, err = f.wizard.Tender(dec("900.00"))
	require.NoError(t, err)
	_, err = f.wizard.ConfirmPayment()
	assert.NoError(t, err)
}

func TestUnknownCouponLeavesDiscountUntouched(t *testing.T) {
	f := newWizardFixture(t)
	f.advanceToPayment(t)

	_, err := f.wizard.ApplyCoupon("WELCOME10")
	require.NoError(t, err)

	_, err = f.wizard.ApplyCoupon("BOGUS99")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidCoupon))

	sess := f.wizard.GetState()
	assert.Equal(t, 10, sess.Payment.DiscountPercent)
	assert.Equal(t, "WELCOME10", sess.Payment.CouponCode)
}

func TestDiscountChangeReArmsConfirmation(t *testing.T) {
	f := newWizardFixture(t)
	f.advanceToPayment(t)

	_, err := f.wizard.Tender(dec("1000.00"))
	require.NoError(t, err)
	_, err = f.wizard.ConfirmPayment()
	require.NoError(t, err)

	// Changing the discount percentage invalidates the confirmation
	sess, err := f.wizard.SetDiscount(20)
	require.NoError(t, err)
	assert.False(t, sess.PaymentConfirmed)
	assert.Equal(t, "800.00", sess.Payment.TotalAmount.StringFixed(2))
	// Change is recomputed against the tender already on record
	assert.Equal(t, "200.00", sess.Payment.Change.StringFixed(2))

	_, err = f.wizard.ConfirmPayment()
	require.NoError(t, err)

	// Re-applying the same percentage is not a change and keeps confirmation
	sess, err = f.wizard.SetDiscount(20)
	require.NoError(t, err)
	assert.True(t, sess.PaymentConfirmed)
}

func TestTenderFrozenWhileConfirmed(t *testing.T) {
	f := newWizardFixture(t)
	f.advanceToPayment(t)

	_, err := f.wizard.Tender(dec("1000.00"))
	require.NoError(t, err)
	_, err = f.wizard.ConfirmPayment()
	require.NoError(t, err)

	_, err = f.wizard.Tender(dec("2000.00"))
	require.Error(t, err)
	assert.Equal(t, "1000.00", f.wizard.GetState().Payment.AmountTendered.StringFixed(2))
}

func TestReenteringPaymentReArmsConfirmation(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	f.advanceToPayment(t)

	_, err := f.wizard.Tender(dec("1000.00"))
	require.NoError(t, err)
	_, err = f.wizard.ConfirmPayment()
	require.NoError(t, err)
	_, err = f.wizard.EnterStage(enum.StageOverview)
	require.NoError(t, err)

	// Going back into Payment drops the confirmation
	sess, err := f.wizard.Back()
	require.NoError(t, err)
	assert.Equal(t, enum.StagePayment, sess.Stage)
	assert.False(t, sess.PaymentConfirmed)

	// Overview can be revisited unconfirmed, but finalizing from it cannot
	sess, err = f.wizard.EnterStage(enum.StageOverview)
	require.NoError(t, err)
	assert.False(t, sess.PaymentConfirmed)
	_, _, err = f.wizard.Finalize(ctx, f.staffID)
	require.Error(t, err)

	// Confirming again re-opens the path to finalize
	_, err = f.wizard.Back()
	require.NoError(t, err)
	_, err = f.wizard.ConfirmPayment()
	require.NoError(t, err)
	_, err = f.wizard.EnterStage(enum.StageOverview)
	require.NoError(t, err)
	_, _, err = f.wizard.Finalize(ctx, f.staffID)
	assert.NoError(t, err)
}

func TestIdentifiersStableAcrossOverviewReentry(t *testing.T) {
	f := newWizardFixture(t)
	f.advanceToPayment(t)

	_, err := f.wizard.Tender(dec("1000.00"))
	require.NoError(t, err)
	_, err = f.wizard.ConfirmPayment()
	require.NoError(t, err)

	sess, err := f.wizard.EnterStage(enum.StageOverview)
	require.NoError(t, err)
	firstOR := *sess.ORNumber
	firstTxn := *sess.TransactionID

	_, err = f.wizard.Back()
	require.NoError(t, err)
	_, err = f.wizard.ConfirmPayment()
	require.NoError(t, err)
	sess, err = f.wizard.EnterStage(enum.StageOverview)
	require.NoError(t, err)

	assert.Equal(t, firstOR, *sess.ORNumber)
	assert.Equal(t, firstTxn, *sess.TransactionID)
}

func TestFinalizeRetryAfterPersistFailure(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	f.advanceToPayment(t)

	_, err := f.wizard.Tender(dec("1000.00"))
	require.NoError(t, err)
	_, err = f.wizard.ConfirmPayment()
	require.NoError(t, err)
	sess, err := f.wizard.EnterStage(enum.StageOverview)
	require.NoError(t, err)
	txnID := *sess.TransactionID

	f.txRepo.failsLeft = 1
	_, _, err = f.wizard.Finalize(ctx, f.staffID)
	assert.True(t, apperror.IsKind(err, apperror.KindCollaborator))

	// The session is untouched: still at Overview, same identifiers
	sess = f.wizard.GetState()
	assert.Equal(t, enum.StageOverview, sess.Stage)
	assert.False(t, sess.Finalized())
	assert.Equal(t, txnID, *sess.TransactionID)

	// The retry succeeds and writes exactly one row
	sess, tx, err := f.wizard.Finalize(ctx, f.staffID)
	require.NoError(t, err)
	assert.Equal(t, txnID, tx.TransactionID)
	assert.True(t, sess.Finalized())
	assert.Len(t, f.txRepo.inserted, 1)
}

func TestReceiptNotEnterableDirectly(t *testing.T) {
	f := newWizardFixture(t)
	f.advanceToPayment(t)

	_, err := f.wizard.Tender(dec("1000.00"))
	require.NoError(t, err)
	_, err = f.wizard.ConfirmPayment()
	require.NoError(t, err)
	_, err = f.wizard.EnterStage(enum.StageOverview)
	require.NoError(t, err)

	// Even with Overview complete, Receipt is reached only through Finalize
	_, err = f.wizard.EnterStage(enum.StageReceipt)
	require.Error(t, err)
	assert.Equal(t, enum.StageOverview, f.wizard.GetState().Stage)
}

func TestCancelRequiresConfirmationOnceServiceSelected(t *testing.T) {
	f := newWizardFixture(t)

	// Before anything was entered, cancel is a silent reset
	_, err := f.wizard.Cancel(false)
	assert.NoError(t, err)

	_, err = f.wizard.SelectService(context.Background(), f.serviceID)
	require.NoError(t, err)

	_, err = f.wizard.Cancel(false)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.True(t, f.wizard.IsTransactionInProgress())

	sess, err := f.wizard.Cancel(true)
	require.NoError(t, err)
	assert.Equal(t, enum.StageSelectService, sess.Stage)
	assert.Nil(t, sess.Service)
	assert.False(t, f.wizard.IsTransactionInProgress())
}

func TestStartNewTransactionOnlyAfterFinalize(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()

	_, err := f.wizard.StartNewTransaction()
	require.Error(t, err)

	f.advanceToPayment(t)
	_, err = f.wizard.Tender(dec("1000.00"))
	require.NoError(t, err)
	_, err = f.wizard.ConfirmPayment()
	require.NoError(t, err)
	_, err = f.wizard.EnterStage(enum.StageOverview)
	require.NoError(t, err)
	_, _, err = f.wizard.Finalize(ctx, f.staffID)
	require.NoError(t, err)

	sess, err := f.wizard.StartNewTransaction()
	require.NoError(t, err)
	assert.Equal(t, enum.StageSelectService, sess.Stage)
	assert.Nil(t, sess.ORNumber)
	assert.False(t, f.wizard.IsTransactionInProgress())
}

func TestFinalizedSessionLocksStageMovement(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	f.advanceToPayment(t)

	_, err := f.wizard.Tender(dec("1000.00"))
	require.NoError(t, err)
	_, err = f.wizard.ConfirmPayment()
	require.NoError(t, err)
	_, err = f.wizard.EnterStage(enum.StageOverview)
	require.NoError(t, err)
	_, _, err = f.wizard.Finalize(ctx, f.staffID)
	require.NoError(t, err)

	_, err = f.wizard.EnterStage(enum.StageOverview)
	require.Error(t, err)
	_, _, err = f.wizard.Finalize(ctx, f.staffID)
	require.Error(t, err)
}

func TestSubscribeReceivesStageChanges(t *testing.T) {
	f := newWizardFixture(t)
	ch := f.wizard.Subscribe()

	_, err := f.wizard.SelectService(context.Background(), f.serviceID)
	require.NoError(t, err)

	select {
	case change := <-ch:
		assert.Equal(t, enum.StageSelectService, change.Stage)
		assert.True(t, change.InProgress)
	default:
		t.Fatal("expected a stage change notification")
	}
}

func TestTabStates(t *testing.T) {
	f := newWizardFixture(t)
	f.advanceToPayment(t)

	states := f.wizard.TabStates(f.wizard.GetState())
	require.Len(t, states, 5)

	byStage := make(map[enum.Stage]bool, len(states))
	for _, st := range states {
		byStage[st.Stage] = st.Enabled
	}

	assert.True(t, byStage[enum.StagePayment])        // active
	assert.True(t, byStage[enum.StageCustomer])       // back
	assert.True(t, byStage[enum.StageOverview])       // payment stage is complete
	assert.False(t, byStage[enum.StageSelectService]) // two stages back
	assert.False(t, byStage[enum.StageReceipt])       // not finalized
}
