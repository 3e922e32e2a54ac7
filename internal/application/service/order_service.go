package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	"github.com/cdzlabs/pos-api/internal/domain/enum"
	"github.com/cdzlabs/pos-api/internal/domain/repository"
	"github.com/cdzlabs/pos-api/pkg/apperror"
	"github.com/cdzlabs/pos-api/pkg/billing"
	"github.com/cdzlabs/pos-api/pkg/pagination"
)

// OrderService turns a cart into a persisted, price-correct, stock-consistent
// order. Card payments are verified with the gateway before any stock is
// touched; the inventory debit and the order insert commit or roll back as a
// single transaction.
type OrderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	inventory    *InventoryService
	gateway      billing.Gateway
	tx           repository.TxManager
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	inventory *InventoryService,
	gateway billing.Gateway,
	tx repository.TxManager,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		inventory:    inventory,
		gateway:      gateway,
		tx:           tx,
	}
}

// OrderItemInput represents one requested cart line
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	CashierID       uuid.UUID
	CustomerID      *uuid.UUID
	PaymentType     enum.PaymentType
	PaymentIntentID *string
	Items           []OrderItemInput
}

// CreateOrder prices the cart, gates card payments on gateway confirmation,
// debits stock atomically, and persists the order with its items.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "at least one item is required"},
		})
	}
	if !input.PaymentType.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_type", Message: "must be one of CASH, CARD, UPI"},
		})
	}

	// Resolve the cashier's store; orders always belong to it.
	cashier, err := s.userRepo.GetWithStore(ctx, input.CashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, apperror.NewNotFoundError("Cashier")
	}
	if cashier.StoreID == nil {
		return nil, apperror.ErrNoStoreAssigned
	}
	storeID := *cashier.StoreID

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	items, stockLines, totals, err := s.priceItems(ctx, uuid.Nil, input.Items)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		StoreID:       storeID,
		CashierID:     input.CashierID,
		CustomerID:    input.CustomerID,
		PaymentType:   input.PaymentType,
		Status:        enum.OrderStatusCompleted,
		Subtotal:      totals.Subtotal,
		TotalDiscount: totals.TotalDiscount,
		TotalAmount:   totals.TotalAmount,
		Items:         items,
	}

	// Card payments must be confirmed before any stock is touched, so a
	// failed payment never leaves inventory debited and the gateway call
	// never runs inside the inventory transaction.
	if input.PaymentType == enum.PaymentTypeCard {
		if input.PaymentIntentID == nil || *input.PaymentIntentID == "" {
			return nil, apperror.ErrPaymentNotConfirmed
		}
		succeeded, err := s.gateway.VerifyPaymentSucceeded(ctx, *input.PaymentIntentID)
		if err != nil {
			return nil, err
		}
		if !succeeded {
			return nil, apperror.ErrPaymentNotConfirmed
		}
		order.PaymentIntentID = input.PaymentIntentID
	}

	// The debit runs under row locks and shares one transaction with the
	// insert: a failed insert takes the debit down with it, so stock can
	// never be lost to an order that was never persisted.
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.inventory.ReserveAndDebit(ctx, storeID, stockLines); err != nil {
			return err
		}
		return s.orderRepo.CreateWithItems(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// UpdateOrderInput represents the patchable fields of an order
type UpdateOrderInput struct {
	PaymentType *enum.PaymentType
	CustomerID  *uuid.UUID
	Items       []OrderItemInput
}

// UpdateOrder replaces an order's payment type, customer, or item list. Item
// replacement reprices every line and swaps the inventory debits atomically,
// so an edit can never bypass stock checks.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, input *UpdateOrderInput) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if input.PaymentType != nil {
		if !input.PaymentType.IsValid() {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "payment_type", Message: "must be one of CASH, CARD, UPI"},
			})
		}
		order.PaymentType = *input.PaymentType
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		order.CustomerID = input.CustomerID
	}

	if len(input.Items) > 0 {
		newItems, newStock, totals, err := s.priceItems(ctx, id, input.Items)
		if err != nil {
			return nil, err
		}

		release := make([]repository.StockLine, 0, len(order.Items))
		for _, item := range order.Items {
			release = append(release, repository.StockLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		// The swap and the item rewrite share one transaction, so a failed
		// rewrite rolls the stock movement back with it.
		err = s.tx.Do(ctx, func(ctx context.Context) error {
			if err := s.inventory.Swap(ctx, order.StoreID, release, newStock); err != nil {
				return err
			}
			order.Subtotal = totals.Subtotal
			order.TotalDiscount = totals.TotalDiscount
			order.TotalAmount = totals.TotalAmount
			return s.orderRepo.ReplaceItems(ctx, order, newItems)
		})
		if err != nil {
			return nil, err
		}
	} else {
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.GetWithItems(ctx, id)
}

// priceItems validates and prices an item list against current product data
func (s *OrderService) priceItems(ctx context.Context, orderID uuid.UUID, inputs []OrderItemInput) ([]entity.OrderItem, []repository.StockLine, OrderTotals, error) {
	productIDs := make([]uuid.UUID, len(inputs))
	for i, item := range inputs {
		if item.Quantity <= 0 {
			return nil, nil, OrderTotals{}, apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: "quantity must be greater than zero"},
			})
		}
		productIDs[i] = item.ProductID
	}

	// Batch fetch all products in one query (prevents N+1)
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, OrderTotals{}, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	lines := make([]LinePrice, 0, len(inputs))
	items := make([]entity.OrderItem, 0, len(inputs))
	stockLines := make([]repository.StockLine, 0, len(inputs))
	for _, item := range inputs {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, nil, OrderTotals{}, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		line := PriceLine(product.SellingPrice, product.DiscountPercentage, item.Quantity)
		lines = append(lines, line)
		items = append(items, entity.OrderItem{
			OrderID:         orderID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			OriginalPrice:   line.OriginalPrice,
			DiscountApplied: line.DiscountApplied,
			Price:           line.FinalPrice,
		})
		stockLines = append(stockLines, repository.StockLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return items, stockLines, SumLines(lines), nil
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrdersByStore lists a store's orders, newest first, with optional filters
func (s *OrderService) ListOrdersByStore(ctx context.Context, storeID uuid.UUID, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.ListByStore(ctx, storeID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListOrdersByCustomer lists all orders for a customer
func (s *OrderService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID)
}

// ListOrdersByCashier lists all orders for a cashier
func (s *OrderService) ListOrdersByCashier(ctx context.Context, cashierID uuid.UUID) ([]entity.Order, error) {
	return s.orderRepo.ListByCashier(ctx, cashierID)
}

// GetTodaysOrders lists a store's orders created since local midnight
func (s *OrderService) GetTodaysOrders(ctx context.Context, storeID uuid.UUID) ([]entity.Order, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.orderRepo.ListByStoreBetween(ctx, storeID, start, start.AddDate(0, 0, 1))
}

// GetRecentOrders lists the store's most recent orders (default 5)
func (s *OrderService) GetRecentOrders(ctx context.Context, storeID uuid.UUID, limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.orderRepo.ListRecentByStore(ctx, storeID, limit)
}

// DeleteOrder voids an order and its items together. Stock is deliberately
// not restored; voiding is not a return.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	return s.orderRepo.DeleteWithItems(ctx, id)
}
