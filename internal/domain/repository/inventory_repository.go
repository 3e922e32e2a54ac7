package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
)

// StockLine is one product/quantity pair in an inventory mutation
type StockLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// InventoryRepository defines the interface for per-store stock operations.
// DebitBatch and SwapBatch lock the affected rows (SELECT ... FOR UPDATE) for
// the duration of the transaction so concurrent orders against the same
// product cannot oversell.
type InventoryRepository interface {
	Create(ctx context.Context, record *entity.InventoryRecord) error
	Update(ctx context.Context, record *entity.InventoryRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryRecord, error)
	GetByProductAndStore(ctx context.Context, productID, storeID uuid.UUID) (*entity.InventoryRecord, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.InventoryRecord, error)
	ListLowStock(ctx context.Context, storeID uuid.UUID) ([]entity.InventoryRecord, error)

	// DebitBatch decrements stock for every line or none of them. It returns
	// apperror business errors when a line has no record or not enough stock.
	DebitBatch(ctx context.Context, storeID uuid.UUID, lines []StockLine) error
	// CreditBatch increments stock for every line; records must exist.
	CreditBatch(ctx context.Context, storeID uuid.UUID, lines []StockLine) error
	// SwapBatch atomically credits the release lines and debits the reserve
	// lines in a single transaction (used when an order's items are replaced).
	SwapBatch(ctx context.Context, storeID uuid.UUID, release, reserve []StockLine) error
}
