package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	"github.com/cdzlabs/pos-api/internal/domain/repository"
	"github.com/cdzlabs/pos-api/pkg/apperror"
)

func newInventoryServiceFixture() (*InventoryService, *mockInventoryRepo, *entity.Store, entity.Product) {
	store := &entity.Store{ID: uuid.New(), Brand: "Main Store"}
	product := entity.Product{
		ID:           uuid.New(),
		StoreID:      store.ID,
		Name:         "Soap",
		SKU:          "SKU-SOAP",
		SellingPrice: decimal.RequireFromString("10.00"),
	}

	invRepo := newMockInventoryRepo()
	svc := NewInventoryService(invRepo, newMockProductRepo(product), newMockStoreRepo(store))
	return svc, invRepo, store, product
}

func TestCreateRecord_HappyPath(t *testing.T) {
	svc, _, store, product := newInventoryServiceFixture()

	record, err := svc.CreateRecord(context.Background(), &CreateRecordInput{
		ProductID:         product.ID,
		StoreID:           store.ID,
		Quantity:          25,
		LowStockThreshold: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, 25, record.Quantity)
	assert.Equal(t, 5, record.LowStockThreshold)
}

func TestCreateRecord_NegativeQuantity(t *testing.T) {
	svc, _, store, product := newInventoryServiceFixture()

	_, err := svc.CreateRecord(context.Background(), &CreateRecordInput{
		ProductID: product.ID,
		StoreID:   store.ID,
		Quantity:  -1,
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestCreateRecord_DuplicateConflicts(t *testing.T) {
	svc, _, store, product := newInventoryServiceFixture()

	_, err := svc.CreateRecord(context.Background(), &CreateRecordInput{
		ProductID: product.ID,
		StoreID:   store.ID,
		Quantity:  10,
	})
	require.NoError(t, err)

	_, err = svc.CreateRecord(context.Background(), &CreateRecordInput{
		ProductID: product.ID,
		StoreID:   store.ID,
		Quantity:  10,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestCreateRecord_UnknownProduct(t *testing.T) {
	svc, _, store, _ := newInventoryServiceFixture()

	_, err := svc.CreateRecord(context.Background(), &CreateRecordInput{
		ProductID: uuid.New(),
		StoreID:   store.ID,
		Quantity:  10,
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestReserveAndDebit_RejectsNonPositiveLines(t *testing.T) {
	svc, invRepo, store, product := newInventoryServiceFixture()
	invRepo.stock(product.ID, product.Name, 10)

	err := svc.ReserveAndDebit(context.Background(), store.ID, []repository.StockLine{
		{ProductID: product.ID, Quantity: 0},
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	assert.Equal(t, 10, invRepo.quantity(product.ID))
}

func TestCredit_RejectsNonPositiveQuantity(t *testing.T) {
	svc, invRepo, store, product := newInventoryServiceFixture()
	invRepo.stock(product.ID, product.Name, 10)

	err := svc.Credit(context.Background(), store.ID, product.ID, -3)

	require.Error(t, err)
	assert.Equal(t, 10, invRepo.quantity(product.ID))
}

func TestCredit_IncreasesStock(t *testing.T) {
	svc, invRepo, store, product := newInventoryServiceFixture()
	invRepo.stock(product.ID, product.Name, 10)

	require.NoError(t, svc.Credit(context.Background(), store.ID, product.ID, 15))
	assert.Equal(t, 25, invRepo.quantity(product.ID))
}

func TestUpdateRecord_SetsAbsoluteQuantity(t *testing.T) {
	svc, _, store, product := newInventoryServiceFixture()

	record, err := svc.CreateRecord(context.Background(), &CreateRecordInput{
		ProductID: product.ID,
		StoreID:   store.ID,
		Quantity:  10,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRecord(context.Background(), record.ID, 42, 8)
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Quantity)
	assert.Equal(t, 8, updated.LowStockThreshold)
}

func TestListLowStock_FiltersByThreshold(t *testing.T) {
	svc, invRepo, store, product := newInventoryServiceFixture()
	invRepo.records[product.ID] = &entity.InventoryRecord{
		ID:                uuid.New(),
		ProductID:         product.ID,
		StoreID:           store.ID,
		Quantity:          3,
		LowStockThreshold: 5,
	}
	healthy := uuid.New()
	invRepo.records[healthy] = &entity.InventoryRecord{
		ID:                uuid.New(),
		ProductID:         healthy,
		StoreID:           store.ID,
		Quantity:          50,
		LowStockThreshold: 5,
	}

	records, err := svc.ListLowStock(context.Background(), store.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, product.ID, records[0].ProductID)
}
