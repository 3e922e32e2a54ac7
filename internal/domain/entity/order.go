package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cdzlabs/pos-api/internal/domain/enum"
)

// Order represents a single checkout transaction. Money fields are stored at
// full numeric precision; rounding to two decimals happens only when the order
// is serialized for a response or a report.
//
// Invariants: TotalAmount = Subtotal - TotalDiscount and each total equals the
// sum of the matching per-item column.
type Order struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	StoreID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"store_id"`
	CashierID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"cashier_id"`
	CustomerID      *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	PaymentType     enum.PaymentType `gorm:"size:20;not null" json:"payment_type"`
	Status          enum.OrderStatus `gorm:"default:0" json:"status"`
	PaymentIntentID *string          `gorm:"size:255" json:"payment_intent_id,omitempty"`
	Subtotal        decimal.Decimal  `gorm:"type:numeric(14,4)" json:"-"`
	TotalDiscount   decimal.Decimal  `gorm:"type:numeric(14,4)" json:"-"`
	TotalAmount     decimal.Decimal  `gorm:"type:numeric(14,4)" json:"-"`
	CreatedAt       time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Store    Store       `gorm:"foreignKey:StoreID" json:"-"`
	Cashier  User        `gorm:"foreignKey:CashierID" json:"-"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler rounding money fields to two decimals for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Subtotal      float64 `json:"subtotal"`
		TotalDiscount float64 `json:"total_discount"`
		TotalAmount   float64 `json:"total_amount"`
	}{
		Alias:         Alias(o),
		Subtotal:      o.Subtotal.Round(2).InexactFloat64(),
		TotalDiscount: o.TotalDiscount.Round(2).InexactFloat64(),
		TotalAmount:   o.TotalAmount.Round(2).InexactFloat64(),
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents one product line within an order. Its lifecycle is
// bound to the order: created with it, soft-deleted with it.
type OrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	OriginalPrice   decimal.Decimal `gorm:"type:numeric(14,4)" json:"-"`
	DiscountApplied decimal.Decimal `gorm:"type:numeric(14,4)" json:"-"`
	Price           decimal.Decimal `gorm:"type:numeric(14,4)" json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler rounding money fields to two decimals for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		OriginalPrice   float64 `json:"original_price"`
		DiscountApplied float64 `json:"discount_applied"`
		Price           float64 `json:"price"`
	}{
		Alias:           Alias(oi),
		OriginalPrice:   oi.OriginalPrice.Round(2).InexactFloat64(),
		DiscountApplied: oi.DiscountApplied.Round(2).InexactFloat64(),
		Price:           oi.Price.Round(2).InexactFloat64(),
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
