package service

import (
	"strings"

	"github.com/salonpoint/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// MaxDiscountPercent is the highest discount an operator may apply.
const MaxDiscountPercent = 50

// CouponTable maps coupon codes to discount percentages. It is injected so
// the promotion set can be swapped or tested independently of the wizard.
type CouponTable map[string]int

// PaymentCalculator is the pure numeric engine behind the payment stage.
// It performs no I/O and holds no mutable state beyond the coupon table.
type PaymentCalculator struct {
	coupons CouponTable
}

// NewPaymentCalculator creates a payment calculator with the given coupon table
func NewPaymentCalculator(coupons CouponTable) *PaymentCalculator {
	if coupons == nil {
		coupons = CouponTable{}
	}
	return &PaymentCalculator{coupons: coupons}
}

// ApplyDiscount computes the discount and total for a base amount.
//
//	discount = round2(base * percent / 100)
//	total    = base - discount
//
// Both results are non-negative by construction since percent is
// restricted to [0, MaxDiscountPercent].
func (c *PaymentCalculator) ApplyDiscount(base decimal.Decimal, percent int) (discount, total decimal.Decimal, err error) {
	if base.IsNegative() {
		return decimal.Zero, decimal.Zero, apperror.NewValidationError("base_amount", "must not be negative")
	}
	if percent < 0 || percent > MaxDiscountPercent {
		return decimal.Zero, decimal.Zero, apperror.NewValidationError("discount_percent", "must be between 0 and 50")
	}
	discount = base.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100)).Round(2)
	total = base.Sub(discount)
	return discount, total, nil
}

// ResolveCoupon looks up a coupon code and returns its discount percentage.
// Unknown codes return ok=false; the caller must leave the current discount
// unchanged and surface the invalid-coupon condition to the operator.
func (c *PaymentCalculator) ResolveCoupon(code string) (percent int, ok bool) {
	percent, ok = c.coupons[strings.ToUpper(strings.TrimSpace(code))]
	return percent, ok
}

// ComputeChange returns tendered minus total. A negative result signals
// insufficient payment and must block confirmation.
func (c *PaymentCalculator) ComputeChange(total, tendered decimal.Decimal) decimal.Decimal {
	return tendered.Sub(total).Round(2)
}
