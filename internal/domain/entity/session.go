package entity

import (
	"time"

	"github.com/salonpoint/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// PaymentDetails holds the running payment figures for the in-flight session.
// Invariants maintained by the payment calculator:
//
//	DiscountAmount == round2(BaseAmount * DiscountPercent / 100)
//	TotalAmount    == BaseAmount - DiscountAmount
//	DiscountPercent in [0, 50]
type PaymentDetails struct {
	Method          enum.PaymentMethod `json:"method"`
	DiscountPercent int                `json:"discount_percent"`
	DiscountAmount  decimal.Decimal    `json:"discount_amount"`
	BaseAmount      decimal.Decimal    `json:"base_amount"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	CouponCode      string             `json:"coupon_code,omitempty"`
	AmountTendered  decimal.Decimal    `json:"amount_tendered"`
	Change          decimal.Decimal    `json:"change"`
}

// InvoiceSession is the single mutable aggregate for the transaction being
// built. Exactly one session exists per process (single operator, single
// register); it is created fresh on wizard entry or reset and destroyed on
// cancel or when a new transaction starts.
type InvoiceSession struct {
	Service          *Service         `json:"service,omitempty"`
	Products         []ServiceProduct `json:"products,omitempty"`
	Customer         *Customer        `json:"customer,omitempty"`
	Payment          PaymentDetails   `json:"payment"`
	ORNumber         *string          `json:"or_number,omitempty"`
	TransactionID    *string          `json:"transaction_id,omitempty"`
	TransactionDate  *time.Time       `json:"transaction_date,omitempty"`
	Stage            enum.Stage       `json:"stage"`
	PaymentConfirmed bool             `json:"payment_confirmed"`
	Version          int64            `json:"version"`
}

// NewInvoiceSession returns a fresh session at the SelectService stage.
func NewInvoiceSession() *InvoiceSession {
	return &InvoiceSession{
		Payment: PaymentDetails{
			Method:         enum.PaymentMethodCash,
			BaseAmount:     decimal.Zero,
			DiscountAmount: decimal.Zero,
			TotalAmount:    decimal.Zero,
			AmountTendered: decimal.Zero,
			Change:         decimal.Zero,
		},
		Stage: enum.StageSelectService,
	}
}

// StageComplete reports whether the given stage's completion predicate holds.
// This is the sole gate used when advancing the wizard.
func (s *InvoiceSession) StageComplete(stage enum.Stage) bool {
	switch stage {
	case enum.StageSelectService:
		return s.Service != nil
	case enum.StageCustomer:
		return s.Customer.IsComplete()
	case enum.StagePayment:
		// Discount defaults to zero, so the stage is complete once reached.
		return s.Service != nil
	case enum.StageOverview:
		return s.PaymentConfirmed && !s.Payment.Change.IsNegative()
	case enum.StageReceipt:
		return s.TransactionDate != nil
	default:
		return false
	}
}

// Finalized reports whether the session has been persisted as a transaction.
func (s *InvoiceSession) Finalized() bool {
	return s.Stage == enum.StageReceipt && s.TransactionDate != nil
}

// Clone returns a deep copy of the session. Callers outside the session
// store only ever see clones, so snapshots cannot mutate shared state.
func (s *InvoiceSession) Clone() *InvoiceSession {
	c := *s
	if s.Service != nil {
		svc := *s.Service
		c.Service = &svc
	}
	if s.Products != nil {
		c.Products = make([]ServiceProduct, len(s.Products))
		copy(c.Products, s.Products)
	}
	if s.Customer != nil {
		cust := *s.Customer
		c.Customer = &cust
	}
	if s.ORNumber != nil {
		or := *s.ORNumber
		c.ORNumber = &or
	}
	if s.TransactionID != nil {
		id := *s.TransactionID
		c.TransactionID = &id
	}
	if s.TransactionDate != nil {
		d := *s.TransactionDate
		c.TransactionDate = &d
	}
	return &c
}
