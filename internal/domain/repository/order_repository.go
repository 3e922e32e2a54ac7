package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	"github.com/cdzlabs/pos-api/internal/domain/enum"
	"github.com/cdzlabs/pos-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// CreateWithItems persists an order and its items as one transaction;
	// either everything commits or nothing does.
	CreateWithItems(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	// ReplaceItems swaps an order's item list and totals in one transaction.
	ReplaceItems(ctx context.Context, order *entity.Order, items []entity.OrderItem) error
	// DeleteWithItems soft-deletes the order and its items together.
	DeleteWithItems(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	ListByStore(ctx context.Context, storeID uuid.UUID, params *OrderFilterParams) ([]entity.Order, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error)
	ListByCashier(ctx context.Context, cashierID uuid.UUID) ([]entity.Order, error)
	ListByStoreBetween(ctx context.Context, storeID uuid.UUID, start, end time.Time) ([]entity.Order, error)
	ListByCashierBetween(ctx context.Context, cashierID uuid.UUID, start, end time.Time) ([]entity.Order, error)
	ListRecentByStore(ctx context.Context, storeID uuid.UUID, limit int) ([]entity.Order, error)
}

// OrderFilterParams contains filtering parameters for store order queries
type OrderFilterParams struct {
	Pagination  *pagination.PaginationParams
	CustomerID  *uuid.UUID
	CashierID   *uuid.UUID
	PaymentType *enum.PaymentType
	Status      *enum.OrderStatus
	StartDate   *time.Time
	EndDate     *time.Time
}
