package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
)

// RefundRepository defines the interface for refund ledger operations
type RefundRepository interface {
	Create(ctx context.Context, refund *entity.Refund) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Refund, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Refund, error)
	ListByCashier(ctx context.Context, cashierID uuid.UUID) ([]entity.Refund, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.Refund, error)
	ListByShiftReport(ctx context.Context, shiftReportID uuid.UUID) ([]entity.Refund, error)
	ListByCashierBetween(ctx context.Context, cashierID uuid.UUID, start, end time.Time) ([]entity.Refund, error)
	// SumByOrder returns the total amount already refunded against an order,
	// used to cap new refunds at the order's refundable remainder.
	SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
}
