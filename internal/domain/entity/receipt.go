package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the business identity printed at the top of a receipt.
type ReceiptHeader struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
}

// ReceiptItem is one bill-of-materials line under the service line.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Receipt is a value object representing a printable receipt.
// It is NOT a database entity — it is projected from a finalized
// invoice session, so every amount on it is frozen at finalize time
// and unaffected by later catalog price changes.
type Receipt struct {
	Header        ReceiptHeader   `json:"header"`
	ORNumber      string          `json:"or_number"`
	TransactionID string          `json:"transaction_id"`
	Date          string          `json:"date"`
	Staff         string          `json:"staff,omitempty"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	CustomerCity  string          `json:"customer_city,omitempty"`
	ServiceName   string          `json:"service_name"`
	Category      string          `json:"category,omitempty"`
	Items         []ReceiptItem   `json:"items,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	CouponCode    string          `json:"coupon_code,omitempty"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Tendered      decimal.Decimal `json:"tendered"`
	Change        decimal.Decimal `json:"change"`
}
