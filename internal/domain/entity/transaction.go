package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonpoint/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is the persisted sale record. It is written exactly once by
// the finalizer and immutable afterwards; the receipt is projected from the
// session, not from this row, so the two are independent after finalize.
type Transaction struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID   string             `gorm:"size:100;uniqueIndex;not null" json:"transaction_id"`
	ORNumber        string             `gorm:"size:100;not null;column:or_number" json:"or_number"`
	ServiceID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"service_id"`
	CustomerName    string             `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone   string             `gorm:"size:50;not null" json:"customer_phone"`
	CustomerGender  string             `gorm:"size:20" json:"customer_gender,omitempty"`
	CustomerCity    string             `gorm:"size:100" json:"customer_city,omitempty"`
	PaymentMethod   enum.PaymentMethod `gorm:"size:50;not null" json:"payment_method"`
	DiscountPercent int                `gorm:"column:discount_percentage;default:0" json:"discount_percentage"`
	DiscountAmount  decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"discount_amount"`
	BaseAmount      decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"base_amount"`
	TotalAmount     decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	CouponCode      string             `gorm:"size:50" json:"coupon_code,omitempty"`
	CreatedBy       uuid.UUID          `gorm:"type:uuid;not null;index" json:"created_by"`
	TransactionDate time.Time          `gorm:"not null" json:"transaction_date"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	// Relationships
	Service Service `gorm:"foreignKey:ServiceID" json:"-"`
	Staff   Staff   `gorm:"foreignKey:CreatedBy" json:"-"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
