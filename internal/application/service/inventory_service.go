package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	"github.com/cdzlabs/pos-api/internal/domain/repository"
	"github.com/cdzlabs/pos-api/pkg/apperror"
)

// InventoryService owns per-store stock: it validates sufficiency and applies
// atomic debits and credits. It is the only write path to inventory records
// besides explicit replenishment.
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	storeRepo     repository.StoreRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		storeRepo:     storeRepo,
	}
}

// CreateRecordInput represents the create inventory record input
type CreateRecordInput struct {
	ProductID         uuid.UUID
	StoreID           uuid.UUID
	Quantity          int
	LowStockThreshold int
}

// CreateRecord creates the inventory record for a (product, store) pair.
// Records are created explicitly; selling a product without one fails.
func (s *InventoryService) CreateRecord(ctx context.Context, input *CreateRecordInput) (*entity.InventoryRecord, error) {
	if input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}

	store, err := s.storeRepo.GetByID(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	existing, err := s.inventoryRepo.GetByProductAndStore(ctx, input.ProductID, input.StoreID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Inventory record already exists for this product and store")
	}

	record := &entity.InventoryRecord{
		ProductID:         input.ProductID,
		StoreID:           input.StoreID,
		Quantity:          input.Quantity,
		LowStockThreshold: input.LowStockThreshold,
	}
	if err := s.inventoryRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecord retrieves the inventory record for a (product, store) pair
func (s *InventoryService) GetRecord(ctx context.Context, productID, storeID uuid.UUID) (*entity.InventoryRecord, error) {
	record, err := s.inventoryRepo.GetByProductAndStore(ctx, productID, storeID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Inventory record")
	}
	return record, nil
}

// UpdateRecord sets a record's absolute quantity and threshold (stock-take path)
func (s *InventoryService) UpdateRecord(ctx context.Context, id uuid.UUID, quantity, lowStockThreshold int) (*entity.InventoryRecord, error) {
	if quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}

	record, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Inventory record")
	}

	record.Quantity = quantity
	record.LowStockThreshold = lowStockThreshold
	if err := s.inventoryRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteRecord removes an inventory record
func (s *InventoryService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	record, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return apperror.NewNotFoundError("Inventory record")
	}
	return s.inventoryRepo.Delete(ctx, id)
}

// ListByStore lists all inventory records for a store
func (s *InventoryService) ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.InventoryRecord, error) {
	return s.inventoryRepo.ListByStore(ctx, storeID)
}

// ListLowStock lists records at or below their low-stock threshold
func (s *InventoryService) ListLowStock(ctx context.Context, storeID uuid.UUID) ([]entity.InventoryRecord, error) {
	return s.inventoryRepo.ListLowStock(ctx, storeID)
}

// ReserveAndDebit decrements stock for every line or none of them. Rows are
// locked for the duration of the check-and-debit so concurrent orders cannot
// oversell the same product.
func (s *InventoryService) ReserveAndDebit(ctx context.Context, storeID uuid.UUID, lines []repository.StockLine) error {
	for _, line := range lines {
		if line.Quantity <= 0 {
			return apperror.NewBadRequestError("Item quantity must be greater than zero")
		}
	}
	return s.inventoryRepo.DebitBatch(ctx, storeID, lines)
}

// Credit increases stock for a single product (replenishment and, when
// enabled, refund restocking).
func (s *InventoryService) Credit(ctx context.Context, storeID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return apperror.NewBadRequestError("Credit quantity must be greater than zero")
	}
	return s.inventoryRepo.CreditBatch(ctx, storeID, []repository.StockLine{
		{ProductID: productID, Quantity: quantity},
	})
}

// CreditBatch increases stock for several products at once
func (s *InventoryService) CreditBatch(ctx context.Context, storeID uuid.UUID, lines []repository.StockLine) error {
	return s.inventoryRepo.CreditBatch(ctx, storeID, lines)
}

// Swap releases one set of debits and reserves another in a single atomic
// step; used when an order's item list is replaced.
func (s *InventoryService) Swap(ctx context.Context, storeID uuid.UUID, release, reserve []repository.StockLine) error {
	for _, line := range reserve {
		if line.Quantity <= 0 {
			return apperror.NewBadRequestError("Item quantity must be greater than zero")
		}
	}
	return s.inventoryRepo.SwapBatch(ctx, storeID, release, reserve)
}
