package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	"github.com/cdzlabs/pos-api/internal/domain/enum"
	"github.com/cdzlabs/pos-api/pkg/apperror"
)

type shiftServiceFixture struct {
	svc        *ShiftService
	shiftRepo  *mockShiftRepo
	orderRepo  *mockOrderRepo
	refundRepo *mockRefundRepo
	storeID    uuid.UUID
	cashierID  uuid.UUID
}

func newShiftServiceFixture() *shiftServiceFixture {
	storeID := uuid.New()
	cashier := &entity.User{ID: uuid.New(), FirstName: "Asha", StoreID: &storeID}

	shiftRepo := newMockShiftRepo()
	orderRepo := newMockOrderRepo()
	refundRepo := newMockRefundRepo()

	svc := NewShiftService(shiftRepo, orderRepo, refundRepo, newMockUserRepo(cashier))
	return &shiftServiceFixture{
		svc:        svc,
		shiftRepo:  shiftRepo,
		orderRepo:  orderRepo,
		refundRepo: refundRepo,
		storeID:    storeID,
		cashierID:  cashier.ID,
	}
}

func (f *shiftServiceFixture) addOrder(paymentType enum.PaymentType, amount string) {
	f.addOrderAt(paymentType, amount, time.Now())
}

func (f *shiftServiceFixture) addOrderAt(paymentType enum.PaymentType, amount string, createdAt time.Time) {
	order := &entity.Order{
		ID:          uuid.New(),
		StoreID:     f.storeID,
		CashierID:   f.cashierID,
		PaymentType: paymentType,
		TotalAmount: decimal.RequireFromString(amount),
		CreatedAt:   createdAt,
	}
	f.orderRepo.orders[order.ID] = order
}

func (f *shiftServiceFixture) addRefund(amount string) {
	refund := &entity.Refund{
		ID:        uuid.New(),
		OrderID:   uuid.New(),
		StoreID:   f.storeID,
		CashierID: f.cashierID,
		Amount:    decimal.RequireFromString(amount),
		CreatedAt: time.Now(),
	}
	f.refundRepo.refunds[refund.ID] = refund
}

func TestStartShift_OpensWithZeroTotals(t *testing.T) {
	f := newShiftServiceFixture()

	report, err := f.svc.StartShift(context.Background(), f.cashierID)

	require.NoError(t, err)
	assert.Equal(t, f.storeID, report.StoreID)
	assert.True(t, report.IsOpen())
	assert.True(t, report.TotalSales.IsZero())
	assert.True(t, report.NetSales.IsZero())
}

func TestStartShift_AlreadyOpen(t *testing.T) {
	f := newShiftServiceFixture()

	_, err := f.svc.StartShift(context.Background(), f.cashierID)
	require.NoError(t, err)

	_, err = f.svc.StartShift(context.Background(), f.cashierID)
	require.ErrorIs(t, err, apperror.ErrShiftAlreadyOpen)
}

func TestStartShift_CashierWithoutStore(t *testing.T) {
	f := newShiftServiceFixture()
	unassigned := &entity.User{ID: uuid.New(), FirstName: "Noor"}
	f.svc.userRepo.(*mockUserRepo).users[unassigned.ID] = unassigned

	_, err := f.svc.StartShift(context.Background(), unassigned.ID)
	require.ErrorIs(t, err, apperror.ErrNoStoreAssigned)
}

func TestGetCurrentShift_NoneOpen(t *testing.T) {
	f := newShiftServiceFixture()

	_, err := f.svc.GetCurrentShift(context.Background(), f.cashierID)
	require.ErrorIs(t, err, apperror.ErrNoActiveShift)
}

func TestGetCurrentShift_AggregatesLive(t *testing.T) {
	f := newShiftServiceFixture()
	_, err := f.svc.StartShift(context.Background(), f.cashierID)
	require.NoError(t, err)

	f.addOrder(enum.PaymentTypeCash, "100.00")
	f.addOrder(enum.PaymentTypeCash, "170.00")
	f.addOrder(enum.PaymentTypeCard, "100.00")
	f.addRefund("50.00")

	report, err := f.svc.GetCurrentShift(context.Background(), f.cashierID)
	require.NoError(t, err)

	assert.True(t, report.TotalSales.Equal(decimal.RequireFromString("370")), "total sales: %s", report.TotalSales)
	assert.True(t, report.TotalRefunds.Equal(decimal.RequireFromString("50")))
	assert.True(t, report.NetSales.Equal(decimal.RequireFromString("320")))
	assert.Equal(t, 3, report.TotalOrders)
	assert.Len(t, report.RecentOrders, 3)
	assert.True(t, report.IsOpen())

	// Tender breakdown in fixed CASH, CARD, UPI order
	require.Len(t, report.PaymentSummaries, 2)
	cash := report.PaymentSummaries[0]
	assert.Equal(t, enum.PaymentTypeCash, cash.Type)
	assert.Equal(t, 2, cash.TransactionCount)
	assert.InDelta(t, 270.00, cash.TotalAmount, 0.001)
	assert.InDelta(t, 72.97, cash.Percentage, 0.001)

	card := report.PaymentSummaries[1]
	assert.Equal(t, enum.PaymentTypeCard, card.Type)
	assert.Equal(t, 1, card.TransactionCount)
	assert.InDelta(t, 27.03, card.Percentage, 0.001)
}

func TestAggregate_IncludesRecentOrdersNewestFirst(t *testing.T) {
	f := newShiftServiceFixture()
	report, err := f.svc.StartShift(context.Background(), f.cashierID)
	require.NoError(t, err)

	// Six orders inside the window; the snapshot keeps the newest five
	amounts := []string{"10.00", "20.00", "30.00", "40.00", "50.00", "60.00"}
	for i, amount := range amounts {
		f.addOrderAt(enum.PaymentTypeCash, amount, report.ShiftStart.Add(time.Duration(i)*time.Nanosecond))
	}

	current, err := f.svc.GetCurrentShift(context.Background(), f.cashierID)
	require.NoError(t, err)

	require.Len(t, current.RecentOrders, 5)
	assert.InDelta(t, 60.00, current.RecentOrders[0].TotalAmount, 0.001)
	assert.InDelta(t, 50.00, current.RecentOrders[1].TotalAmount, 0.001)
	assert.InDelta(t, 20.00, current.RecentOrders[4].TotalAmount, 0.001)
	assert.Equal(t, enum.PaymentTypeCash, current.RecentOrders[0].PaymentType)
}

func TestEndShift_FreezesAggregates(t *testing.T) {
	f := newShiftServiceFixture()
	_, err := f.svc.StartShift(context.Background(), f.cashierID)
	require.NoError(t, err)

	f.addOrder(enum.PaymentTypeUPI, "200.00")
	f.addRefund("20.00")

	report, err := f.svc.EndShift(context.Background(), f.cashierID)
	require.NoError(t, err)

	require.NotNil(t, report.ShiftEnd)
	assert.False(t, report.IsOpen())
	assert.True(t, report.TotalSales.Equal(decimal.RequireFromString("200")))
	assert.True(t, report.NetSales.Equal(decimal.RequireFromString("180")))

	// The shift is closed now, so another can be opened
	_, err = f.svc.StartShift(context.Background(), f.cashierID)
	require.NoError(t, err)
}

func TestEndShift_NoneOpen(t *testing.T) {
	f := newShiftServiceFixture()

	_, err := f.svc.EndShift(context.Background(), f.cashierID)
	require.ErrorIs(t, err, apperror.ErrNoActiveShift)
}

func TestAggregate_IncludesTopProducts(t *testing.T) {
	f := newShiftServiceFixture()
	_, err := f.svc.StartShift(context.Background(), f.cashierID)
	require.NoError(t, err)

	f.shiftRepo.topProducts = []entity.TopProduct{
		{ProductID: uuid.New(), ProductName: "Soap", ProductSKU: "SKU-1", QuantitySold: 12, Revenue: 1080},
		{ProductID: uuid.New(), ProductName: "Brush", ProductSKU: "SKU-2", QuantitySold: 4, Revenue: 200},
	}

	report, err := f.svc.GetCurrentShift(context.Background(), f.cashierID)
	require.NoError(t, err)

	require.Len(t, report.TopProducts, 2)
	assert.Equal(t, "Soap", report.TopProducts[0].ProductName)
}
