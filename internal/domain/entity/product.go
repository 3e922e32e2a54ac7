package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a sellable item. Its price and discount percentage are
// snapshotted into order items at checkout, so later product edits never
// rewrite history.
type Product struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	StoreID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id"`
	CategoryID         *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name               string          `gorm:"size:255;not null" json:"name"`
	SKU                string          `gorm:"size:100;unique;not null;column:sku" json:"sku"`
	Description        *string         `gorm:"type:text" json:"description,omitempty"`
	MRP                decimal.Decimal `gorm:"type:numeric(14,4);column:mrp" json:"-"`
	SellingPrice       decimal.Decimal `gorm:"type:numeric(14,4)" json:"-"`
	DiscountPercentage decimal.Decimal `gorm:"type:numeric(5,2)" json:"-"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Store    Store     `gorm:"foreignKey:StoreID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// MarshalJSON custom marshaler rounding money fields to two decimals for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		MRP                float64 `json:"mrp"`
		SellingPrice       float64 `json:"selling_price"`
		DiscountPercentage float64 `json:"discount_percentage"`
	}{
		Alias:              Alias(p),
		MRP:                p.MRP.Round(2).InexactFloat64(),
		SellingPrice:       p.SellingPrice.Round(2).InexactFloat64(),
		DiscountPercentage: p.DiscountPercentage.InexactFloat64(),
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StoreID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
