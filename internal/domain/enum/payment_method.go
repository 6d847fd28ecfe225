package enum

// PaymentMethod is the tender type recorded on a transaction.
// Only cash-equivalent tender is supported at the register.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid reports whether m is a supported payment method
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash
}
