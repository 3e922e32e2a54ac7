package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	"github.com/cdzlabs/pos-api/internal/domain/enum"
	"github.com/cdzlabs/pos-api/internal/domain/repository"
	"github.com/cdzlabs/pos-api/pkg/apperror"
	"github.com/cdzlabs/pos-api/pkg/billing"
)

// RefundService appends to the refund ledger and keeps order status and the
// payment gateway in sync. Refunds are capped at the order's refundable
// remainder; a card refund that the gateway rejects is never recorded.
type RefundService struct {
	refundRepo      repository.RefundRepository
	orderRepo       repository.OrderRepository
	userRepo        repository.UserRepository
	shiftRepo       repository.ShiftReportRepository
	inventory       *InventoryService
	gateway         billing.Gateway
	restockOnRefund bool
}

// NewRefundService creates a new refund service
func NewRefundService(
	refundRepo repository.RefundRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	shiftRepo repository.ShiftReportRepository,
	inventory *InventoryService,
	gateway billing.Gateway,
	restockOnRefund bool,
) *RefundService {
	return &RefundService{
		refundRepo:      refundRepo,
		orderRepo:       orderRepo,
		userRepo:        userRepo,
		shiftRepo:       shiftRepo,
		inventory:       inventory,
		gateway:         gateway,
		restockOnRefund: restockOnRefund,
	}
}

// RefundItemInput names a returned line for restocking
type RefundItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateRefundInput represents the create refund input. Items is optional and
// only consulted when restock-on-refund is enabled.
type CreateRefundInput struct {
	OrderID   uuid.UUID
	CashierID uuid.UUID
	Amount    decimal.Decimal
	Reason    string
	Items     []RefundItemInput
}

// CreateRefund validates the amount against the order's refundable remainder,
// pushes card refunds through the gateway, records the ledger entry, and
// moves the order to PARTIALLY_REFUNDED or REFUNDED.
func (s *RefundService) CreateRefund(ctx context.Context, input *CreateRefundInput) (*entity.Refund, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "must be greater than zero"},
		})
	}

	order, err := s.orderRepo.GetWithItems(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	cashier, err := s.userRepo.GetByID(ctx, input.CashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, apperror.NewNotFoundError("Cashier")
	}

	alreadyRefunded, err := s.refundRepo.SumByOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	remaining := order.TotalAmount.Sub(alreadyRefunded)
	if input.Amount.GreaterThan(remaining) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "exceeds the order's refundable remainder"},
		})
	}

	// Card refunds go through the gateway first; a rejected refund must not
	// reach the ledger.
	if order.PaymentType == enum.PaymentTypeCard {
		if order.PaymentIntentID == nil {
			return nil, apperror.ErrPaymentNotConfirmed
		}
		if err := s.gateway.RefundPayment(ctx, *order.PaymentIntentID, MinorUnits(input.Amount), input.Reason); err != nil {
			return nil, err
		}
	}

	refund := &entity.Refund{
		OrderID:     input.OrderID,
		StoreID:     order.StoreID,
		CashierID:   input.CashierID,
		Amount:      input.Amount,
		Reason:      input.Reason,
		PaymentType: order.PaymentType,
	}

	// Attach the refund to the cashier's open shift when one exists, so shift
	// totals can be computed from the ledger alone.
	shift, err := s.shiftRepo.GetOpenByCashier(ctx, input.CashierID)
	if err != nil {
		return nil, err
	}
	if shift != nil {
		refund.ShiftReportID = &shift.ID
	}

	if err := s.refundRepo.Create(ctx, refund); err != nil {
		return nil, err
	}

	status := enum.OrderStatusPartiallyRefunded
	if alreadyRefunded.Add(input.Amount).Equal(order.TotalAmount) {
		status = enum.OrderStatusRefunded
	}
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}

	if s.restockOnRefund && len(input.Items) > 0 {
		lines := make([]repository.StockLine, 0, len(input.Items))
		for _, item := range input.Items {
			if item.Quantity <= 0 {
				continue
			}
			lines = append(lines, repository.StockLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		if len(lines) > 0 {
			if err := s.inventory.CreditBatch(ctx, order.StoreID, lines); err != nil {
				return nil, err
			}
		}
	}

	return refund, nil
}

// GetRefund retrieves a refund by ID
func (s *RefundService) GetRefund(ctx context.Context, id uuid.UUID) (*entity.Refund, error) {
	refund, err := s.refundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, apperror.NewNotFoundError("Refund")
	}
	return refund, nil
}

// ListRefunds lists all refunds
func (s *RefundService) ListRefunds(ctx context.Context) ([]entity.Refund, error) {
	return s.refundRepo.List(ctx)
}

// ListRefundsByCashier lists all refunds issued by a cashier
func (s *RefundService) ListRefundsByCashier(ctx context.Context, cashierID uuid.UUID) ([]entity.Refund, error) {
	return s.refundRepo.ListByCashier(ctx, cashierID)
}

// ListRefundsByCashierBetween lists a cashier's refunds inside [start, end)
func (s *RefundService) ListRefundsByCashierBetween(ctx context.Context, cashierID uuid.UUID, start, end time.Time) ([]entity.Refund, error) {
	return s.refundRepo.ListByCashierBetween(ctx, cashierID, start, end)
}

// ListRefundsByStore lists all refunds for a store
func (s *RefundService) ListRefundsByStore(ctx context.Context, storeID uuid.UUID) ([]entity.Refund, error) {
	return s.refundRepo.ListByStore(ctx, storeID)
}

// ListRefundsByShiftReport lists the refunds attached to a shift report
func (s *RefundService) ListRefundsByShiftReport(ctx context.Context, shiftReportID uuid.UUID) ([]entity.Refund, error) {
	return s.refundRepo.ListByShiftReport(ctx, shiftReportID)
}

// DeleteRefund voids a refund ledger entry. The order status and any gateway
// refund are left untouched; voiding is an administrative correction.
func (s *RefundService) DeleteRefund(ctx context.Context, id uuid.UUID) error {
	refund, err := s.refundRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if refund == nil {
		return apperror.NewNotFoundError("Refund")
	}
	return s.refundRepo.Delete(ctx, id)
}
