package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonpoint/pos-api/internal/domain/entity"
	"github.com/salonpoint/pos-api/internal/domain/enum"
	"github.com/salonpoint/pos-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalizedSession() *entity.InvoiceSession {
	or := "OR-20250115-00042"
	txn := "TXN-20250115-00042"
	date := time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)

	sess := entity.NewInvoiceSession()
	sess.Service = &entity.Service{
		ID:       uuid.New(),
		Name:     "Hair Color",
		Category: "Hair",
		Price:    dec("1000.00"),
	}
	sess.Products = []entity.ServiceProduct{
		{ProductName: "Color Cream", Quantity: 1, Price: dec("250.00")},
		{ProductName: "Developer", Quantity: 2, Price: dec("80.00")},
	}
	sess.Customer = &entity.Customer{Name: "Maria Santos", Phone: "09171234567", City: "Quezon City"}
	sess.Payment.BaseAmount = dec("1000.00")
	sess.Payment.DiscountPercent = 10
	sess.Payment.DiscountAmount = dec("100.00")
	sess.Payment.TotalAmount = dec("900.00")
	sess.Payment.CouponCode = "WELCOME10"
	sess.Payment.AmountTendered = dec("1000.00")
	sess.Payment.Change = dec("100.00")
	sess.PaymentConfirmed = true
	sess.ORNumber = &or
	sess.TransactionID = &txn
	sess.TransactionDate = &date
	sess.Stage = enum.StageReceipt
	return sess
}

func newReceiptService() *ReceiptService {
	header := entity.ReceiptHeader{
		BusinessName: "SalonPoint",
		Address:      "123 Session Rd, Baguio",
		Phone:        "074-123-4567",
	}
	return NewReceiptService(printer.NewNullPrinter(), nil, header, 32)
}

func TestRenderProjectsFrozenSession(t *testing.T) {
	svc := newReceiptService()
	sess := finalizedSession()

	r, err := svc.Render(sess, "Ana")
	require.NoError(t, err)

	assert.Equal(t, "SalonPoint", r.Header.BusinessName)
	assert.Equal(t, "OR-20250115-00042", r.ORNumber)
	assert.Equal(t, "TXN-20250115-00042", r.TransactionID)
	assert.Equal(t, "2025-01-15 14:30", r.Date)
	assert.Equal(t, "Ana", r.Staff)
	assert.Equal(t, "Maria Santos", r.CustomerName)
	assert.Equal(t, "Hair Color", r.ServiceName)
	assert.Equal(t, "WELCOME10", r.CouponCode)
	assert.Equal(t, "1000.00", r.SubTotal.StringFixed(2))
	assert.Equal(t, "100.00", r.Discount.StringFixed(2))
	assert.Equal(t, "900.00", r.Total.StringFixed(2))
	assert.Equal(t, "1000.00", r.Tendered.StringFixed(2))
	assert.Equal(t, "100.00", r.Change.StringFixed(2))

	require.Len(t, r.Items, 2)
	assert.Equal(t, "Color Cream", r.Items[0].Name)
	assert.Equal(t, 2, r.Items[1].Quantity)
}

func TestRenderUsesSessionAmountsNotCatalog(t *testing.T) {
	svc := newReceiptService()
	sess := finalizedSession()

	// A later catalog price change must not leak into the receipt: the
	// amounts come from the payment figures frozen at finalize time.
	sess.Service.Price = dec("9999.00")

	r, err := svc.Render(sess, "")
	require.NoError(t, err)
	assert.Equal(t, "1000.00", r.SubTotal.StringFixed(2))
	assert.Equal(t, "900.00", r.Total.StringFixed(2))
}

func TestRenderRejectsUnfinalizedSession(t *testing.T) {
	svc := newReceiptService()

	sess := finalizedSession()
	sess.TransactionDate = nil
	_, err := svc.Render(sess, "Ana")
	require.Error(t, err)

	sess = finalizedSession()
	sess.Stage = enum.StageOverview
	_, err = svc.Render(sess, "Ana")
	require.Error(t, err)
}

func TestPrintSendsEscPosDocument(t *testing.T) {
	svc := newReceiptService()
	sess := finalizedSession()

	r, err := svc.Print(sess, "Ana")
	require.NoError(t, err)
	assert.Equal(t, "OR-20250115-00042", r.ORNumber)
}

func TestFormatReceiptContainsKeyLines(t *testing.T) {
	svc := newReceiptService()
	sess := finalizedSession()

	r, err := svc.Render(sess, "Ana")
	require.NoError(t, err)

	data := string(svc.formatReceipt(r))
	assert.Contains(t, data, "SalonPoint")
	assert.Contains(t, data, "OR-20250115-00042")
	assert.Contains(t, data, "Maria Santos")
	assert.Contains(t, data, "Hair Color")
	assert.Contains(t, data, "Discount (WELCOME10):")
	assert.Contains(t, data, "900.00")
	assert.Contains(t, data, "Color Cream")
}
