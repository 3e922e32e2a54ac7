package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRecord tracks on-hand stock for one product in one store. A product
// must have a record before it can be sold; records are created explicitly,
// never implicitly on first order.
type InventoryRecord struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProductID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_store" json:"product_id"`
	StoreID           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_store" json:"store_id"`
	Quantity          int            `gorm:"not null;default:0" json:"quantity"`
	LowStockThreshold int            `gorm:"not null;default:0" json:"low_stock_threshold"`
	LastUpdate        time.Time      `json:"last_update"`
	CreatedAt         time.Time      `json:"created_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Store   Store   `gorm:"foreignKey:StoreID" json:"-"`
}

// IsLowStock reports whether the record is at or below its alert threshold
func (r *InventoryRecord) IsLowStock() bool {
	return r.Quantity <= r.LowStockThreshold
}

// BeforeCreate generates a UUID before creating a new inventory record
func (r *InventoryRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeSave stamps the last mutation time
func (r *InventoryRecord) BeforeSave(tx *gorm.DB) error {
	r.LastUpdate = time.Now()
	return nil
}

// TableName returns the table name for the InventoryRecord model
func (InventoryRecord) TableName() string {
	return "inventory_records"
}
