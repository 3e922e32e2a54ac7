package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cdzlabs/pos-api/internal/domain/enum"
)

// ShiftReport is a cashier's working window. While the shift is open
// (ShiftEnd == nil) all aggregates are recomputed live from orders and
// refunds; closing the shift freezes them as of the close timestamp.
type ShiftReport struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CashierID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"cashier_id"`
	StoreID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"store_id"`
	ShiftStart       time.Time        `gorm:"not null" json:"shift_start"`
	ShiftEnd         *time.Time       `json:"shift_end,omitempty"`
	TotalSales       decimal.Decimal  `gorm:"type:numeric(14,4)" json:"-"`
	TotalRefunds     decimal.Decimal  `gorm:"type:numeric(14,4)" json:"-"`
	NetSales         decimal.Decimal  `gorm:"type:numeric(14,4)" json:"-"`
	TotalOrders      int              `gorm:"default:0" json:"total_orders"`
	PaymentSummaries []PaymentSummary `gorm:"serializer:json" json:"payment_summaries,omitempty"`
	TopProducts      []TopProduct     `gorm:"serializer:json" json:"top_selling_products,omitempty"`
	RecentOrders     []RecentOrder    `gorm:"serializer:json" json:"recent_orders,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Cashier User     `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
	Store   Store    `gorm:"foreignKey:StoreID" json:"-"`
	Refunds []Refund `gorm:"foreignKey:ShiftReportID" json:"refunds,omitempty"`
}

// IsOpen reports whether the shift has not been closed yet
func (s *ShiftReport) IsOpen() bool {
	return s.ShiftEnd == nil
}

// MarshalJSON custom marshaler rounding money fields to two decimals for API responses
func (s ShiftReport) MarshalJSON() ([]byte, error) {
	type Alias ShiftReport
	return json.Marshal(&struct {
		Alias
		TotalSales   float64 `json:"total_sales"`
		TotalRefunds float64 `json:"total_refunds"`
		NetSales     float64 `json:"net_sales"`
	}{
		Alias:        Alias(s),
		TotalSales:   s.TotalSales.Round(2).InexactFloat64(),
		TotalRefunds: s.TotalRefunds.Round(2).InexactFloat64(),
		NetSales:     s.NetSales.Round(2).InexactFloat64(),
	})
}

// BeforeCreate generates a UUID before creating a new shift report
func (s *ShiftReport) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ShiftReport model
func (ShiftReport) TableName() string {
	return "shift_reports"
}

// PaymentSummary breaks a shift's sales down by tender type
type PaymentSummary struct {
	Type             enum.PaymentType `json:"type"`
	TotalAmount      float64          `json:"total_amount"`
	TransactionCount int              `json:"transaction_count"`
	Percentage       float64          `json:"percentage"`
}

// RecentOrder is a condensed order line for the shift's latest-sales view,
// newest first
type RecentOrder struct {
	OrderID     uuid.UUID        `json:"order_id"`
	PaymentType enum.PaymentType `json:"payment_type"`
	Status      enum.OrderStatus `json:"status"`
	TotalAmount float64          `json:"total_amount"`
	CreatedAt   time.Time        `json:"created_at"`
}

// TopProduct is a best-seller line within a shift window
type TopProduct struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductSKU   string    `json:"product_sku"`
	QuantitySold int       `json:"quantity_sold"`
	Revenue      float64   `json:"revenue"`
}
