package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	"github.com/cdzlabs/pos-api/internal/domain/enum"
	"github.com/cdzlabs/pos-api/internal/domain/repository"
	"github.com/cdzlabs/pos-api/pkg/apperror"
)

const (
	topProductsLimit  = 5
	recentOrdersLimit = 5
)

// ShiftService manages a cashier's working window and derives its aggregates
// from the order and refund ledgers. A cashier has at most one open shift;
// closing it freezes the computed totals.
type ShiftService struct {
	shiftRepo  repository.ShiftReportRepository
	orderRepo  repository.OrderRepository
	refundRepo repository.RefundRepository
	userRepo   repository.UserRepository
}

// NewShiftService creates a new shift service
func NewShiftService(
	shiftRepo repository.ShiftReportRepository,
	orderRepo repository.OrderRepository,
	refundRepo repository.RefundRepository,
	userRepo repository.UserRepository,
) *ShiftService {
	return &ShiftService{
		shiftRepo:  shiftRepo,
		orderRepo:  orderRepo,
		refundRepo: refundRepo,
		userRepo:   userRepo,
	}
}

// StartShift opens a new shift for the cashier. Fails when the cashier
// already has an open shift or has no store assigned.
func (s *ShiftService) StartShift(ctx context.Context, cashierID uuid.UUID) (*entity.ShiftReport, error) {
	cashier, err := s.userRepo.GetWithStore(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, apperror.NewNotFoundError("Cashier")
	}
	if cashier.StoreID == nil {
		return nil, apperror.ErrNoStoreAssigned
	}

	open, err := s.shiftRepo.GetOpenByCashier(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, apperror.ErrShiftAlreadyOpen
	}

	report := &entity.ShiftReport{
		CashierID:    cashierID,
		StoreID:      *cashier.StoreID,
		ShiftStart:   time.Now(),
		TotalSales:   decimal.Zero,
		TotalRefunds: decimal.Zero,
		NetSales:     decimal.Zero,
	}
	if err := s.shiftRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// GetCurrentShift returns the cashier's open shift with aggregates recomputed
// live from the ledgers. Nothing is persisted.
func (s *ShiftService) GetCurrentShift(ctx context.Context, cashierID uuid.UUID) (*entity.ShiftReport, error) {
	report, err := s.shiftRepo.GetOpenByCashier(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperror.ErrNoActiveShift
	}

	if err := s.aggregate(ctx, report, time.Now()); err != nil {
		return nil, err
	}
	return report, nil
}

// EndShift closes the cashier's open shift and freezes its aggregates as of
// the close timestamp.
func (s *ShiftService) EndShift(ctx context.Context, cashierID uuid.UUID) (*entity.ShiftReport, error) {
	report, err := s.shiftRepo.GetOpenByCashier(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperror.ErrNoActiveShift
	}

	end := time.Now()
	if err := s.aggregate(ctx, report, end); err != nil {
		return nil, err
	}
	report.ShiftEnd = &end

	if err := s.shiftRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// aggregate recomputes the report's totals, payment breakdown, top products,
// and recent-orders snapshot from the orders and refunds in [ShiftStart, end).
func (s *ShiftService) aggregate(ctx context.Context, report *entity.ShiftReport, end time.Time) error {
	orders, err := s.orderRepo.ListByCashierBetween(ctx, report.CashierID, report.ShiftStart, end)
	if err != nil {
		return err
	}
	refunds, err := s.refundRepo.ListByCashierBetween(ctx, report.CashierID, report.ShiftStart, end)
	if err != nil {
		return err
	}

	totalSales := decimal.Zero
	byType := make(map[enum.PaymentType]*entity.PaymentSummary)
	typeAmounts := make(map[enum.PaymentType]decimal.Decimal)
	for _, order := range orders {
		totalSales = totalSales.Add(order.TotalAmount)
		summary, exists := byType[order.PaymentType]
		if !exists {
			summary = &entity.PaymentSummary{Type: order.PaymentType}
			byType[order.PaymentType] = summary
		}
		summary.TransactionCount++
		typeAmounts[order.PaymentType] = typeAmounts[order.PaymentType].Add(order.TotalAmount)
	}

	totalRefunds := decimal.Zero
	for _, refund := range refunds {
		totalRefunds = totalRefunds.Add(refund.Amount)
	}

	summaries := make([]entity.PaymentSummary, 0, len(byType))
	for _, paymentType := range []enum.PaymentType{enum.PaymentTypeCash, enum.PaymentTypeCard, enum.PaymentTypeUPI} {
		summary, exists := byType[paymentType]
		if !exists {
			continue
		}
		amount := typeAmounts[paymentType]
		summary.TotalAmount = amount.Round(2).InexactFloat64()
		if totalSales.IsPositive() {
			summary.Percentage = amount.Div(totalSales).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		summaries = append(summaries, *summary)
	}

	topProducts, err := s.shiftRepo.TopProductsBetween(ctx, report.CashierID, report.ShiftStart, end, topProductsLimit)
	if err != nil {
		return err
	}

	report.TotalSales = totalSales
	report.TotalRefunds = totalRefunds
	report.NetSales = totalSales.Sub(totalRefunds)
	report.TotalOrders = len(orders)
	report.PaymentSummaries = summaries
	report.TopProducts = topProducts
	report.RecentOrders = recentOrders(orders)
	return nil
}

// recentOrders condenses the window's newest orders into the report snapshot
func recentOrders(orders []entity.Order) []entity.RecentOrder {
	sorted := make([]entity.Order, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	limit := recentOrdersLimit
	if len(sorted) < limit {
		limit = len(sorted)
	}
	recent := make([]entity.RecentOrder, 0, limit)
	for _, order := range sorted[:limit] {
		recent = append(recent, entity.RecentOrder{
			OrderID:     order.ID,
			PaymentType: order.PaymentType,
			Status:      order.Status,
			TotalAmount: order.TotalAmount.Round(2).InexactFloat64(),
			CreatedAt:   order.CreatedAt,
		})
	}
	return recent
}

// GetShiftReport retrieves a shift report by ID
func (s *ShiftService) GetShiftReport(ctx context.Context, id uuid.UUID) (*entity.ShiftReport, error) {
	report, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperror.NewNotFoundError("Shift report")
	}
	return report, nil
}

// GetShiftReportByDate retrieves the cashier's shift report for a calendar day
func (s *ShiftService) GetShiftReportByDate(ctx context.Context, cashierID uuid.UUID, date time.Time) (*entity.ShiftReport, error) {
	report, err := s.shiftRepo.GetByCashierAndDate(ctx, cashierID, date)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperror.NewNotFoundError("Shift report")
	}
	return report, nil
}

// ListShiftReportsByCashier lists all shift reports for a cashier
func (s *ShiftService) ListShiftReportsByCashier(ctx context.Context, cashierID uuid.UUID) ([]entity.ShiftReport, error) {
	return s.shiftRepo.ListByCashier(ctx, cashierID)
}

// ListShiftReportsByStore lists all shift reports for a store
func (s *ShiftService) ListShiftReportsByStore(ctx context.Context, storeID uuid.UUID) ([]entity.ShiftReport, error) {
	return s.shiftRepo.ListByStore(ctx, storeID)
}
