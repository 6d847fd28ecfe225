package service

import (
	"testing"

	"github.com/salonpoint/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestApplyDiscount(t *testing.T) {
	calc := NewPaymentCalculator(nil)

	tests := []struct {
		name         string
		base         string
		percent      int
		wantDiscount string
		wantTotal    string
	}{
		{"no discount", "1000.00", 0, "0.00", "1000.00"},
		{"ten percent", "1000.00", 10, "100.00", "900.00"},
		{"max discount", "1000.00", 50, "500.00", "500.00"},
		{"rounds to cents", "99.99", 15, "15.00", "84.99"},
		{"odd cents", "33.33", 10, "3.33", "30.00"},
		{"zero base", "0.00", 20, "0.00", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, total, err := calc.ApplyDiscount(dec(tt.base), tt.percent)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDiscount, discount.StringFixed(2))
			assert.Equal(t, tt.wantTotal, total.StringFixed(2))
			// total + discount must always reconstruct the base
			assert.True(t, total.Add(discount).Equal(dec(tt.base)))
		})
	}
}

func TestApplyDiscountRejectsOutOfRange(t *testing.T) {
	calc := NewPaymentCalculator(nil)

	_, _, err := calc.ApplyDiscount(dec("100.00"), -1)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, _, err = calc.ApplyDiscount(dec("100.00"), MaxDiscountPercent+1)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, _, err = calc.ApplyDiscount(dec("-5.00"), 10)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestResolveCoupon(t *testing.T) {
	calc := NewPaymentCalculator(CouponTable{
		"WELCOME10": 10,
		"VIP20":     20,
	})

	percent, ok := calc.ResolveCoupon("WELCOME10")
	assert.True(t, ok)
	assert.Equal(t, 10, percent)

	// Codes are matched case-insensitively with surrounding whitespace ignored
	percent, ok = calc.ResolveCoupon("  welcome10 ")
	assert.True(t, ok)
	assert.Equal(t, 10, percent)

	_, ok = calc.ResolveCoupon("NOPE")
	assert.False(t, ok)

	_, ok = calc.ResolveCoupon("")
	assert.False(t, ok)
}

func TestComputeChange(t *testing.T) {
	calc := NewPaymentCalculator(nil)

	assert.Equal(t, "100.00", calc.ComputeChange(dec("900.00"), dec("1000.00")).StringFixed(2))
	assert.Equal(t, "0.00", calc.ComputeChange(dec("900.00"), dec("900.00")).StringFixed(2))

	change := calc.ComputeChange(dec("900.00"), dec("800.00"))
	assert.True(t, change.IsNegative())
	assert.Equal(t, "-100.00", change.StringFixed(2))
}
