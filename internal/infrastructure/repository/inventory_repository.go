package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	domainRepo "github.com/cdzlabs/pos-api/internal/domain/repository"
	"github.com/cdzlabs/pos-api/pkg/apperror"
)

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, record *entity.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *inventoryRepository) Update(ctx context.Context, record *entity.InventoryRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.InventoryRecord{}, "id = ?", id).Error
}

func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryRecord, error) {
	var record entity.InventoryRecord
	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *inventoryRepository) GetByProductAndStore(ctx context.Context, productID, storeID uuid.UUID) (*entity.InventoryRecord, error) {
	var record entity.InventoryRecord
	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&record, "product_id = ? AND store_id = ?", productID, storeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *inventoryRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.InventoryRecord, error) {
	var records []entity.InventoryRecord
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("store_id = ?", storeID).
		Order("last_update DESC").
		Find(&records).Error
	return records, err
}

func (r *inventoryRepository) ListLowStock(ctx context.Context, storeID uuid.UUID) ([]entity.InventoryRecord, error) {
	var records []entity.InventoryRecord
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("store_id = ? AND quantity <= low_stock_threshold", storeID).
		Order("quantity ASC").
		Find(&records).Error
	return records, err
}

// DebitBatch locks the affected rows, verifies every line has enough stock,
// and applies all decrements in one transaction. Any shortfall rolls the whole
// batch back with a typed business error.
func (r *inventoryRepository) DebitBatch(ctx context.Context, storeID uuid.UUID, lines []domainRepo.StockLine) error {
	lines = mergeLines(lines)
	if len(lines) == 0 {
		return nil
	}

	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		records, err := lockRecords(tx, storeID, lines)
		if err != nil {
			return err
		}

		for _, line := range lines {
			record, exists := records[line.ProductID]
			if !exists {
				return apperror.NewProductNotStockedError(productName(tx, line.ProductID))
			}
			if record.Quantity < line.Quantity {
				return apperror.NewInsufficientStockError(productName(tx, line.ProductID), record.Quantity, line.Quantity)
			}
		}

		for _, line := range lines {
			err := tx.Model(&entity.InventoryRecord{}).
				Where("store_id = ? AND product_id = ?", storeID, line.ProductID).
				Updates(map[string]interface{}{
					"quantity":    gorm.Expr("quantity - ?", line.Quantity),
					"last_update": time.Now(),
				}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// CreditBatch increments stock for every line. Lines without a record fail the
// batch so a compensation credit is never silently dropped.
func (r *inventoryRepository) CreditBatch(ctx context.Context, storeID uuid.UUID, lines []domainRepo.StockLine) error {
	lines = mergeLines(lines)
	if len(lines) == 0 {
		return nil
	}

	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return creditLines(tx, storeID, lines)
	})
}

// SwapBatch releases one set of debits and reserves another atomically. Both
// sides run under the same row locks, so the freed stock is visible to the
// reserve checks but never to a concurrent transaction in between.
func (r *inventoryRepository) SwapBatch(ctx context.Context, storeID uuid.UUID, release, reserve []domainRepo.StockLine) error {
	release = mergeLines(release)
	reserve = mergeLines(reserve)

	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		all := append(append([]domainRepo.StockLine{}, release...), reserve...)
		if _, err := lockRecords(tx, storeID, all); err != nil {
			return err
		}

		if err := creditLines(tx, storeID, release); err != nil {
			return err
		}

		records, err := loadRecords(tx, storeID, reserve)
		if err != nil {
			return err
		}
		for _, line := range reserve {
			record, exists := records[line.ProductID]
			if !exists {
				return apperror.NewProductNotStockedError(productName(tx, line.ProductID))
			}
			if record.Quantity < line.Quantity {
				return apperror.NewInsufficientStockError(productName(tx, line.ProductID), record.Quantity, line.Quantity)
			}
		}

		for _, line := range reserve {
			err := tx.Model(&entity.InventoryRecord{}).
				Where("store_id = ? AND product_id = ?", storeID, line.ProductID).
				Updates(map[string]interface{}{
					"quantity":    gorm.Expr("quantity - ?", line.Quantity),
					"last_update": time.Now(),
				}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// lockRecords loads the inventory rows for the given lines with
// SELECT ... FOR UPDATE, keyed by product ID.
func lockRecords(tx *gorm.DB, storeID uuid.UUID, lines []domainRepo.StockLine) (map[uuid.UUID]entity.InventoryRecord, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	var records []entity.InventoryRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("store_id = ? AND product_id IN ?", storeID, ids).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID]entity.InventoryRecord, len(records))
	for _, record := range records {
		byProduct[record.ProductID] = record
	}
	return byProduct, nil
}

// loadRecords re-reads rows already locked earlier in the same transaction
func loadRecords(tx *gorm.DB, storeID uuid.UUID, lines []domainRepo.StockLine) (map[uuid.UUID]entity.InventoryRecord, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	var records []entity.InventoryRecord
	err := tx.Where("store_id = ? AND product_id IN ?", storeID, ids).Find(&records).Error
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID]entity.InventoryRecord, len(records))
	for _, record := range records {
		byProduct[record.ProductID] = record
	}
	return byProduct, nil
}

func creditLines(tx *gorm.DB, storeID uuid.UUID, lines []domainRepo.StockLine) error {
	for _, line := range lines {
		result := tx.Model(&entity.InventoryRecord{}).
			Where("store_id = ? AND product_id = ?", storeID, line.ProductID).
			Updates(map[string]interface{}{
				"quantity":    gorm.Expr("quantity + ?", line.Quantity),
				"last_update": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NewProductNotStockedError(productName(tx, line.ProductID))
		}
	}
	return nil
}

// mergeLines collapses duplicate product lines so stock checks see the
// combined quantity.
func mergeLines(lines []domainRepo.StockLine) []domainRepo.StockLine {
	merged := make([]domainRepo.StockLine, 0, len(lines))
	index := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		if i, exists := index[line.ProductID]; exists {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged
}

// productName resolves a product's display name for error messages
func productName(tx *gorm.DB, productID uuid.UUID) string {
	var name string
	err := tx.Model(&entity.Product{}).
		Where("id = ?", productID).
		Pluck("name", &name).Error
	if err != nil || name == "" {
		return productID.String()
	}
	return name
}
