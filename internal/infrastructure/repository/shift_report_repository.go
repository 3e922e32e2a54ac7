package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	domainRepo "github.com/cdzlabs/pos-api/internal/domain/repository"
)

type shiftReportRepository struct {
	db *gorm.DB
}

// NewShiftReportRepository creates a new shift report repository
func NewShiftReportRepository(db *gorm.DB) domainRepo.ShiftReportRepository {
	return &shiftReportRepository{db: db}
}

func (r *shiftReportRepository) Create(ctx context.Context, report *entity.ShiftReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *shiftReportRepository) Update(ctx context.Context, report *entity.ShiftReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *shiftReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ShiftReport, error) {
	var report entity.ShiftReport
	err := r.db.WithContext(ctx).
		Preload("Cashier").
		First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *shiftReportRepository) GetOpenByCashier(ctx context.Context, cashierID uuid.UUID) (*entity.ShiftReport, error) {
	var report entity.ShiftReport
	err := r.db.WithContext(ctx).
		Where("cashier_id = ? AND shift_end IS NULL", cashierID).
		Order("shift_start DESC").
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *shiftReportRepository) GetByCashierAndDate(ctx context.Context, cashierID uuid.UUID, date time.Time) (*entity.ShiftReport, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var report entity.ShiftReport
	err := r.db.WithContext(ctx).
		Where("cashier_id = ? AND shift_start >= ? AND shift_start < ?", cashierID, dayStart, dayEnd).
		Order("shift_start DESC").
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *shiftReportRepository) ListByCashier(ctx context.Context, cashierID uuid.UUID) ([]entity.ShiftReport, error) {
	var reports []entity.ShiftReport
	err := r.db.WithContext(ctx).
		Where("cashier_id = ?", cashierID).
		Order("shift_start DESC").
		Find(&reports).Error
	return reports, err
}

func (r *shiftReportRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.ShiftReport, error) {
	var reports []entity.ShiftReport
	err := r.db.WithContext(ctx).
		Preload("Cashier").
		Where("store_id = ?", storeID).
		Order("shift_start DESC").
		Find(&reports).Error
	return reports, err
}

func (r *shiftReportRepository) TopProductsBetween(ctx context.Context, cashierID uuid.UUID, start, end time.Time, limit int) ([]entity.TopProduct, error) {
	var products []entity.TopProduct
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id AS product_id,
			p.name AS product_name,
			p.sku AS product_sku,
			SUM(oi.quantity) AS quantity_sold,
			ROUND(SUM(oi.price), 2) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.cashier_id = ?
			AND o.created_at >= ?
			AND o.created_at < ?
			AND o.deleted_at IS NULL
			AND oi.deleted_at IS NULL
		GROUP BY p.id, p.name, p.sku
		ORDER BY quantity_sold DESC, revenue DESC
		LIMIT ?
	`, cashierID, start, end, limit).Scan(&products).Error

	return products, err
}
