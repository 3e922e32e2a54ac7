package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	"github.com/cdzlabs/pos-api/internal/domain/enum"
	"github.com/cdzlabs/pos-api/pkg/apperror"
)

type orderServiceFixture struct {
	svc       *OrderService
	orderRepo *mockOrderRepo
	invRepo   *mockInventoryRepo
	gateway   *mockGateway
	storeID   uuid.UUID
	cashierID uuid.UUID
}

func newOrderServiceFixture(products ...entity.Product) *orderServiceFixture {
	storeID := uuid.New()
	cashier := &entity.User{ID: uuid.New(), FirstName: "Asha", Role: "cashier", StoreID: &storeID}

	orderRepo := newMockOrderRepo()
	invRepo := newMockInventoryRepo()
	gateway := &mockGateway{}
	inventory := NewInventoryService(invRepo, newMockProductRepo(products...), newMockStoreRepo())

	svc := NewOrderService(
		orderRepo,
		newMockProductRepo(products...),
		newMockCustomerRepo(),
		newMockUserRepo(cashier),
		inventory,
		gateway,
		&mockTxManager{inv: invRepo, orders: orderRepo},
	)
	return &orderServiceFixture{
		svc:       svc,
		orderRepo: orderRepo,
		invRepo:   invRepo,
		gateway:   gateway,
		storeID:   storeID,
		cashierID: cashier.ID,
	}
}

func testProduct(name, price, discount string) entity.Product {
	return entity.Product{
		ID:                 uuid.New(),
		Name:               name,
		SKU:                "SKU-" + name,
		SellingPrice:       decimal.RequireFromString(price),
		DiscountPercentage: decimal.RequireFromString(discount),
	}
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   f.cashierID,
		PaymentType: enum.PaymentTypeCash,
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
}

func TestCreateOrder_InvalidPaymentType(t *testing.T) {
	p := testProduct("Soap", "10.00", "0")
	f := newOrderServiceFixture(p)

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   f.cashierID,
		PaymentType: enum.PaymentType("CHEQUE"),
		Items:       []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
}

func TestCreateOrder_CashierWithoutStore(t *testing.T) {
	p := testProduct("Soap", "10.00", "0")
	f := newOrderServiceFixture(p)
	unassigned := &entity.User{ID: uuid.New(), FirstName: "Noor"}
	f.svc.userRepo.(*mockUserRepo).users[unassigned.ID] = unassigned

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   unassigned.ID,
		PaymentType: enum.PaymentTypeCash,
		Items:       []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})

	require.ErrorIs(t, err, apperror.ErrNoStoreAssigned)
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   f.cashierID,
		PaymentType: enum.PaymentTypeCash,
		Items:       []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestCreateOrder_CashHappyPath(t *testing.T) {
	soap := testProduct("Soap", "100.00", "10")
	brush := testProduct("Brush", "50.00", "0")
	f := newOrderServiceFixture(soap, brush)
	f.invRepo.stock(soap.ID, soap.Name, 10)
	f.invRepo.stock(brush.ID, brush.Name, 5)

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   f.cashierID,
		PaymentType: enum.PaymentTypeCash,
		Items: []OrderItemInput{
			{ProductID: soap.ID, Quantity: 3},
			{ProductID: brush.ID, Quantity: 1},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, f.storeID, order.StoreID)
	assert.Equal(t, enum.OrderStatusCompleted, order.Status)

	// 3x100 - 10% = 270, plus 1x50 undiscounted
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("350")), "subtotal: %s", order.Subtotal)
	assert.True(t, order.TotalDiscount.Equal(decimal.RequireFromString("30")), "discount: %s", order.TotalDiscount)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("320")), "total: %s", order.TotalAmount)
	assert.True(t, order.TotalAmount.Equal(order.Subtotal.Sub(order.TotalDiscount)))

	// Item snapshots match the line pricing
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("270")))
	assert.True(t, order.Items[1].Price.Equal(decimal.RequireFromString("50")))

	// Stock was debited
	assert.Equal(t, 7, f.invRepo.quantity(soap.ID))
	assert.Equal(t, 4, f.invRepo.quantity(brush.ID))
}

func TestCreateOrder_InsufficientStockLeavesEverythingUntouched(t *testing.T) {
	soap := testProduct("Soap", "100.00", "0")
	brush := testProduct("Brush", "50.00", "0")
	f := newOrderServiceFixture(soap, brush)
	f.invRepo.stock(soap.ID, soap.Name, 10)
	f.invRepo.stock(brush.ID, brush.Name, 1)

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   f.cashierID,
		PaymentType: enum.PaymentTypeCash,
		Items: []OrderItemInput{
			{ProductID: soap.ID, Quantity: 2},
			{ProductID: brush.ID, Quantity: 3},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient stock for 'Brush'")
	assert.Contains(t, err.Error(), "Available: 1")
	assert.Contains(t, err.Error(), "Requested: 3")

	// All-or-nothing: the soap line must not have been debited either
	assert.Equal(t, 10, f.invRepo.quantity(soap.ID))
	assert.Equal(t, 1, f.invRepo.quantity(brush.ID))
	assert.Empty(t, f.orderRepo.orders)
}

func TestCreateOrder_ProductNotStocked(t *testing.T) {
	soap := testProduct("Soap", "100.00", "0")
	f := newOrderServiceFixture(soap)
	// No inventory record for soap

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   f.cashierID,
		PaymentType: enum.PaymentTypeCash,
		Items:       []OrderItemInput{{ProductID: soap.ID, Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
	assert.Empty(t, f.orderRepo.orders)
}

func TestCreateOrder_CardWithoutPaymentIntent(t *testing.T) {
	soap := testProduct("Soap", "100.00", "0")
	f := newOrderServiceFixture(soap)
	f.invRepo.stock(soap.ID, soap.Name, 10)

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   f.cashierID,
		PaymentType: enum.PaymentTypeCard,
		Items:       []OrderItemInput{{ProductID: soap.ID, Quantity: 1}},
	})

	require.ErrorIs(t, err, apperror.ErrPaymentNotConfirmed)
	assert.Equal(t, 10, f.invRepo.quantity(soap.ID))
}

func TestCreateOrder_CardNotCapturedLeavesStockUntouched(t *testing.T) {
	soap := testProduct("Soap", "100.00", "0")
	f := newOrderServiceFixture(soap)
	f.invRepo.stock(soap.ID, soap.Name, 10)
	f.gateway.verifyResult = false
	intentID := "pi_123"

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:       f.cashierID,
		PaymentType:     enum.PaymentTypeCard,
		PaymentIntentID: &intentID,
		Items:           []OrderItemInput{{ProductID: soap.ID, Quantity: 1}},
	})

	require.ErrorIs(t, err, apperror.ErrPaymentNotConfirmed)
	assert.Equal(t, 10, f.invRepo.quantity(soap.ID))
	assert.Empty(t, f.orderRepo.orders)
}

func TestCreateOrder_CardConfirmedSucceeds(t *testing.T) {
	soap := testProduct("Soap", "100.00", "0")
	f := newOrderServiceFixture(soap)
	f.invRepo.stock(soap.ID, soap.Name, 10)
	f.gateway.verifyResult = true
	intentID := "pi_123"

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:       f.cashierID,
		PaymentType:     enum.PaymentTypeCard,
		PaymentIntentID: &intentID,
		Items:           []OrderItemInput{{ProductID: soap.ID, Quantity: 2}},
	})

	require.NoError(t, err)
	require.NotNil(t, order.PaymentIntentID)
	assert.Equal(t, "pi_123", *order.PaymentIntentID)
	assert.Equal(t, 8, f.invRepo.quantity(soap.ID))
}

func TestCreateOrder_PersistFailureRollsBackDebit(t *testing.T) {
	soap := testProduct("Soap", "100.00", "0")
	f := newOrderServiceFixture(soap)
	f.invRepo.stock(soap.ID, soap.Name, 10)
	f.orderRepo.createErr = errors.New("connection reset")

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   f.cashierID,
		PaymentType: enum.PaymentTypeCash,
		Items:       []OrderItemInput{{ProductID: soap.ID, Quantity: 4}},
	})

	require.Error(t, err)
	// The debit and the insert share one transaction: the failed insert takes
	// the debit down with it. No separate compensation credit is involved, so
	// there is no window where stock could be lost without an order row.
	assert.Equal(t, 10, f.invRepo.quantity(soap.ID))
	assert.Empty(t, f.invRepo.creditCalls)
	assert.Empty(t, f.orderRepo.orders)
}

func TestUpdateOrder_PersistFailureRollsBackSwap(t *testing.T) {
	soap := testProduct("Soap", "100.00", "0")
	brush := testProduct("Brush", "50.00", "0")
	f := newOrderServiceFixture(soap, brush)
	f.invRepo.stock(soap.ID, soap.Name, 10)
	f.invRepo.stock(brush.ID, brush.Name, 10)

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   f.cashierID,
		PaymentType: enum.PaymentTypeCash,
		Items:       []OrderItemInput{{ProductID: soap.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 7, f.invRepo.quantity(soap.ID))

	f.orderRepo.replaceErr = errors.New("connection reset")
	_, err = f.svc.UpdateOrder(context.Background(), order.ID, &UpdateOrderInput{
		Items: []OrderItemInput{{ProductID: brush.ID, Quantity: 2}},
	})
	require.Error(t, err)

	// The swap rolled back with the failed rewrite; the old debit stands
	assert.Equal(t, 7, f.invRepo.quantity(soap.ID))
	assert.Equal(t, 10, f.invRepo.quantity(brush.ID))

	current, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, current.TotalAmount.Equal(decimal.RequireFromString("300")))
}

func TestUpdateOrder_ReplaceItemsSwapsStock(t *testing.T) {
	soap := testProduct("Soap", "100.00", "0")
	brush := testProduct("Brush", "50.00", "0")
	f := newOrderServiceFixture(soap, brush)
	f.invRepo.stock(soap.ID, soap.Name, 10)
	f.invRepo.stock(brush.ID, brush.Name, 10)

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   f.cashierID,
		PaymentType: enum.PaymentTypeCash,
		Items:       []OrderItemInput{{ProductID: soap.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 7, f.invRepo.quantity(soap.ID))

	updated, err := f.svc.UpdateOrder(context.Background(), order.ID, &UpdateOrderInput{
		Items: []OrderItemInput{{ProductID: brush.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// Old debit released, new debit applied
	assert.Equal(t, 10, f.invRepo.quantity(soap.ID))
	assert.Equal(t, 8, f.invRepo.quantity(brush.ID))
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("100")), "total: %s", updated.TotalAmount)
}

func TestUpdateOrder_InsufficientStockKeepsOldItems(t *testing.T) {
	soap := testProduct("Soap", "100.00", "0")
	brush := testProduct("Brush", "50.00", "0")
	f := newOrderServiceFixture(soap, brush)
	f.invRepo.stock(soap.ID, soap.Name, 10)
	f.invRepo.stock(brush.ID, brush.Name, 1)

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   f.cashierID,
		PaymentType: enum.PaymentTypeCash,
		Items:       []OrderItemInput{{ProductID: soap.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateOrder(context.Background(), order.ID, &UpdateOrderInput{
		Items: []OrderItemInput{{ProductID: brush.ID, Quantity: 5}},
	})
	require.Error(t, err)

	// The swap failed atomically, so the original debit still stands
	assert.Equal(t, 7, f.invRepo.quantity(soap.ID))
	assert.Equal(t, 1, f.invRepo.quantity(brush.ID))

	current, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, current.TotalAmount.Equal(decimal.RequireFromString("300")))
}

func TestDeleteOrder_DoesNotRestock(t *testing.T) {
	soap := testProduct("Soap", "100.00", "0")
	f := newOrderServiceFixture(soap)
	f.invRepo.stock(soap.ID, soap.Name, 10)

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CashierID:   f.cashierID,
		PaymentType: enum.PaymentTypeCash,
		Items:       []OrderItemInput{{ProductID: soap.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteOrder(context.Background(), order.ID))

	// Voiding is not a return; stock stays debited
	assert.Equal(t, 7, f.invRepo.quantity(soap.ID))
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.svc.GetOrder(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}
