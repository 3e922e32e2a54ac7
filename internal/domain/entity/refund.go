package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cdzlabs/pos-api/internal/domain/enum"
)

// Refund is an append-only ledger entry reversing part of an order's financial
// effect. A second refund against the same order is a new row, never an edit.
type Refund struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"order_id"`
	StoreID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"store_id"`
	CashierID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"cashier_id"`
	ShiftReportID *uuid.UUID       `gorm:"type:uuid;index" json:"shift_report_id,omitempty"`
	Amount        decimal.Decimal  `gorm:"type:numeric(14,4);not null" json:"-"`
	Reason        string           `gorm:"type:text" json:"reason"`
	PaymentType   enum.PaymentType `gorm:"size:20;not null" json:"payment_type"`
	CreatedAt     time.Time        `gorm:"index" json:"created_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Order   Order `gorm:"foreignKey:OrderID" json:"-"`
	Store   Store `gorm:"foreignKey:StoreID" json:"-"`
	Cashier User  `gorm:"foreignKey:CashierID" json:"-"`
}

// MarshalJSON custom marshaler rounding the amount to two decimals for API responses
func (r Refund) MarshalJSON() ([]byte, error) {
	type Alias Refund
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(r),
		Amount: r.Amount.Round(2).InexactFloat64(),
	})
}

// BeforeCreate generates a UUID before creating a new refund
func (r *Refund) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Refund model
func (Refund) TableName() string {
	return "refunds"
}
