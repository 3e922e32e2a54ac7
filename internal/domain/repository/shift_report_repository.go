package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
)

// ShiftReportRepository defines the interface for shift report persistence
type ShiftReportRepository interface {
	Create(ctx context.Context, report *entity.ShiftReport) error
	Update(ctx context.Context, report *entity.ShiftReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ShiftReport, error)
	// GetOpenByCashier returns the cashier's open shift (shift_end IS NULL),
	// or nil when no shift is active.
	GetOpenByCashier(ctx context.Context, cashierID uuid.UUID) (*entity.ShiftReport, error)
	GetByCashierAndDate(ctx context.Context, cashierID uuid.UUID, date time.Time) (*entity.ShiftReport, error)
	ListByCashier(ctx context.Context, cashierID uuid.UUID) ([]entity.ShiftReport, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.ShiftReport, error)
	// TopProductsBetween aggregates the best-selling products for a cashier's
	// window from order items.
	TopProductsBetween(ctx context.Context, cashierID uuid.UUID, start, end time.Time, limit int) ([]entity.TopProduct, error)
}
