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
)

// --- Mock repositories ---

type mockUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newMockUserRepo(users ...*entity.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) GetWithStore(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *entity.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]entity.User, error) {
	var out []entity.User
	for _, u := range m.users {
		if u.StoreID != nil && *u.StoreID == storeID {
			out = append(out, *u)
		}
	}
	return out, nil
}

type mockStoreRepo struct {
	stores map[uuid.UUID]*entity.Store
}

func newMockStoreRepo(stores ...*entity.Store) *mockStoreRepo {
	m := &mockStoreRepo{stores: make(map[uuid.UUID]*entity.Store)}
	for _, s := range stores {
		m.stores[s.ID] = s
	}
	return m
}

func (m *mockStoreRepo) Create(_ context.Context, store *entity.Store) error {
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	m.stores[store.ID] = store
	return nil
}

func (m *mockStoreRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Store, error) {
	return m.stores[id], nil
}

func (m *mockStoreRepo) Update(_ context.Context, store *entity.Store) error {
	m.stores[store.ID] = store
	return nil
}

func (m *mockStoreRepo) List(_ context.Context) ([]entity.Store, error) {
	var out []entity.Store
	for _, s := range m.stores {
		out = append(out, *s)
	}
	return out, nil
}

type mockCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newMockCustomerRepo(customers ...*entity.Customer) *mockCustomerRepo {
	m := &mockCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		m.customers[c.ID] = c
	}
	return m
}

func (m *mockCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return m.customers[id], nil
}

func (m *mockCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.customers, id)
	return nil
}

func (m *mockCustomerRepo) List(_ context.Context, _ string) ([]entity.Customer, error) {
	var out []entity.Customer
	for _, c := range m.customers {
		out = append(out, *c)
	}
	return out, nil
}

type mockProductRepo struct {
	products map[uuid.UUID]entity.Product
}

func newMockProductRepo(products ...entity.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[uuid.UUID]entity.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.products[product.ID] = *product
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range m.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Update(_ context.Context, product *entity.Product) error {
	m.products[product.ID] = *product
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) ListByStore(_ context.Context, storeID uuid.UUID, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range m.products {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

// mockInventoryRepo tracks per-product quantities and records every mutation
// so tests can assert atomicity and rollback.
type mockInventoryRepo struct {
	records     map[uuid.UUID]*entity.InventoryRecord // keyed by product ID
	names       map[uuid.UUID]string
	debitCalls  [][]repository.StockLine
	creditCalls [][]repository.StockLine
	swapCalls   int
}

func newMockInventoryRepo() *mockInventoryRepo {
	return &mockInventoryRepo{
		records: make(map[uuid.UUID]*entity.InventoryRecord),
		names:   make(map[uuid.UUID]string),
	}
}

func (m *mockInventoryRepo) stock(productID uuid.UUID, name string, quantity int) {
	m.records[productID] = &entity.InventoryRecord{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
	}
	m.names[productID] = name
}

func (m *mockInventoryRepo) Create(_ context.Context, record *entity.InventoryRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.records[record.ProductID] = record
	return nil
}

func (m *mockInventoryRepo) Update(_ context.Context, record *entity.InventoryRecord) error {
	m.records[record.ProductID] = record
	return nil
}

func (m *mockInventoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for productID, r := range m.records {
		if r.ID == id {
			delete(m.records, productID)
		}
	}
	return nil
}

func (m *mockInventoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.InventoryRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockInventoryRepo) GetByProductAndStore(_ context.Context, productID, _ uuid.UUID) (*entity.InventoryRecord, error) {
	return m.records[productID], nil
}

func (m *mockInventoryRepo) ListByStore(_ context.Context, _ uuid.UUID) ([]entity.InventoryRecord, error) {
	var out []entity.InventoryRecord
	for _, r := range m.records {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockInventoryRepo) ListLowStock(_ context.Context, _ uuid.UUID) ([]entity.InventoryRecord, error) {
	var out []entity.InventoryRecord
	for _, r := range m.records {
		if r.IsLowStock() {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockInventoryRepo) DebitBatch(_ context.Context, _ uuid.UUID, lines []repository.StockLine) error {
	for _, line := range lines {
		record, ok := m.records[line.ProductID]
		if !ok {
			return apperror.NewProductNotStockedError(m.names[line.ProductID])
		}
		if record.Quantity < line.Quantity {
			return apperror.NewInsufficientStockError(m.names[line.ProductID], record.Quantity, line.Quantity)
		}
	}
	for _, line := range lines {
		m.records[line.ProductID].Quantity -= line.Quantity
	}
	m.debitCalls = append(m.debitCalls, lines)
	return nil
}

func (m *mockInventoryRepo) CreditBatch(_ context.Context, _ uuid.UUID, lines []repository.StockLine) error {
	for _, line := range lines {
		record, ok := m.records[line.ProductID]
		if !ok {
			return apperror.NewProductNotStockedError(m.names[line.ProductID])
		}
		record.Quantity += line.Quantity
	}
	m.creditCalls = append(m.creditCalls, lines)
	return nil
}

func (m *mockInventoryRepo) SwapBatch(ctx context.Context, storeID uuid.UUID, release, reserve []repository.StockLine) error {
	for _, line := range release {
		if record, ok := m.records[line.ProductID]; ok {
			record.Quantity += line.Quantity
		}
	}
	if err := m.DebitBatch(ctx, storeID, reserve); err != nil {
		for _, line := range release {
			if record, ok := m.records[line.ProductID]; ok {
				record.Quantity -= line.Quantity
			}
		}
		return err
	}
	m.swapCalls++
	return nil
}

func (m *mockInventoryRepo) quantity(productID uuid.UUID) int {
	if record, ok := m.records[productID]; ok {
		return record.Quantity
	}
	return 0
}

func (m *mockInventoryRepo) snapshot() map[uuid.UUID]int {
	quantities := make(map[uuid.UUID]int, len(m.records))
	for productID, record := range m.records {
		quantities[productID] = record.Quantity
	}
	return quantities
}

func (m *mockInventoryRepo) restore(quantities map[uuid.UUID]int) {
	for productID, quantity := range quantities {
		if record, ok := m.records[productID]; ok {
			record.Quantity = quantity
		}
	}
}

type mockOrderRepo struct {
	orders        map[uuid.UUID]*entity.Order
	createErr     error
	replaceErr    error
	statusUpdates map[uuid.UUID]enum.OrderStatus
}

func newMockOrderRepo(orders ...*entity.Order) *mockOrderRepo {
	m := &mockOrderRepo{
		orders:        make(map[uuid.UUID]*entity.Order),
		statusUpdates: make(map[uuid.UUID]enum.OrderStatus),
	}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *mockOrderRepo) CreateWithItems(_ context.Context, order *entity.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return m.orders[id], nil
}

// GetWithItems hands out a copy, like a real read would, so callers mutating
// the result cannot change stored state without writing it back.
func (m *mockOrderRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) Update(_ context.Context, order *entity.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) ReplaceItems(_ context.Context, order *entity.Order, items []entity.OrderItem) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	order.Items = items
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) DeleteWithItems(_ context.Context, id uuid.UUID) error {
	delete(m.orders, id)
	return nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if order, ok := m.orders[id]; ok {
		order.Status = status
	}
	m.statusUpdates[id] = status
	return nil
}

func (m *mockOrderRepo) ListByStore(_ context.Context, storeID uuid.UUID, _ *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range m.orders {
		if o.StoreID == storeID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockOrderRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range m.orders {
		if o.CustomerID != nil && *o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) ListByCashier(_ context.Context, cashierID uuid.UUID) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range m.orders {
		if o.CashierID == cashierID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) ListByStoreBetween(_ context.Context, storeID uuid.UUID, start, end time.Time) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range m.orders {
		if o.StoreID == storeID && !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) ListByCashierBetween(_ context.Context, cashierID uuid.UUID, start, end time.Time) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range m.orders {
		if o.CashierID == cashierID && !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) ListRecentByStore(_ context.Context, storeID uuid.UUID, limit int) ([]entity.Order, error) {
	out, _, err := m.ListByStore(context.Background(), storeID, nil)
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockOrderRepo) snapshot() map[uuid.UUID]*entity.Order {
	orders := make(map[uuid.UUID]*entity.Order, len(m.orders))
	for id, order := range m.orders {
		orders[id] = order
	}
	return orders
}

func (m *mockOrderRepo) restore(orders map[uuid.UUID]*entity.Order) {
	m.orders = orders
}

// mockTxManager emulates transactional rollback over the in-memory mocks:
// when fn fails, the enlisted stores are restored to their pre-call state.
type mockTxManager struct {
	inv    *mockInventoryRepo
	orders *mockOrderRepo
	calls  int
}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	quantities := m.inv.snapshot()
	orders := m.orders.snapshot()
	if err := fn(ctx); err != nil {
		m.inv.restore(quantities)
		m.orders.restore(orders)
		return err
	}
	return nil
}

type mockRefundRepo struct {
	refunds   map[uuid.UUID]*entity.Refund
	sums      map[uuid.UUID]decimal.Decimal // keyed by order ID
	createErr error
}

func newMockRefundRepo() *mockRefundRepo {
	return &mockRefundRepo{
		refunds: make(map[uuid.UUID]*entity.Refund),
		sums:    make(map[uuid.UUID]decimal.Decimal),
	}
}

func (m *mockRefundRepo) Create(_ context.Context, refund *entity.Refund) error {
	if m.createErr != nil {
		return m.createErr
	}
	if refund.ID == uuid.Nil {
		refund.ID = uuid.New()
	}
	refund.CreatedAt = time.Now()
	m.refunds[refund.ID] = refund
	m.sums[refund.OrderID] = m.sums[refund.OrderID].Add(refund.Amount)
	return nil
}

func (m *mockRefundRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Refund, error) {
	return m.refunds[id], nil
}

func (m *mockRefundRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.refunds, id)
	return nil
}

func (m *mockRefundRepo) List(_ context.Context) ([]entity.Refund, error) {
	var out []entity.Refund
	for _, r := range m.refunds {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockRefundRepo) ListByCashier(_ context.Context, cashierID uuid.UUID) ([]entity.Refund, error) {
	var out []entity.Refund
	for _, r := range m.refunds {
		if r.CashierID == cashierID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRefundRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]entity.Refund, error) {
	var out []entity.Refund
	for _, r := range m.refunds {
		if r.StoreID == storeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRefundRepo) ListByShiftReport(_ context.Context, shiftReportID uuid.UUID) ([]entity.Refund, error) {
	var out []entity.Refund
	for _, r := range m.refunds {
		if r.ShiftReportID != nil && *r.ShiftReportID == shiftReportID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRefundRepo) ListByCashierBetween(_ context.Context, cashierID uuid.UUID, start, end time.Time) ([]entity.Refund, error) {
	var out []entity.Refund
	for _, r := range m.refunds {
		if r.CashierID == cashierID && !r.CreatedAt.Before(start) && r.CreatedAt.Before(end) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRefundRepo) SumByOrder(_ context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	return m.sums[orderID], nil
}

type mockShiftRepo struct {
	reports     map[uuid.UUID]*entity.ShiftReport
	topProducts []entity.TopProduct
}

func newMockShiftRepo(reports ...*entity.ShiftReport) *mockShiftRepo {
	m := &mockShiftRepo{reports: make(map[uuid.UUID]*entity.ShiftReport)}
	for _, r := range reports {
		m.reports[r.ID] = r
	}
	return m
}

func (m *mockShiftRepo) Create(_ context.Context, report *entity.ShiftReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	m.reports[report.ID] = report
	return nil
}

func (m *mockShiftRepo) Update(_ context.Context, report *entity.ShiftReport) error {
	m.reports[report.ID] = report
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ShiftReport, error) {
	return m.reports[id], nil
}

func (m *mockShiftRepo) GetOpenByCashier(_ context.Context, cashierID uuid.UUID) (*entity.ShiftReport, error) {
	for _, r := range m.reports {
		if r.CashierID == cashierID && r.IsOpen() {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockShiftRepo) GetByCashierAndDate(_ context.Context, cashierID uuid.UUID, date time.Time) (*entity.ShiftReport, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	for _, r := range m.reports {
		if r.CashierID == cashierID && !r.ShiftStart.Before(dayStart) && r.ShiftStart.Before(dayEnd) {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockShiftRepo) ListByCashier(_ context.Context, cashierID uuid.UUID) ([]entity.ShiftReport, error) {
	var out []entity.ShiftReport
	for _, r := range m.reports {
		if r.CashierID == cashierID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockShiftRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]entity.ShiftReport, error) {
	var out []entity.ShiftReport
	for _, r := range m.reports {
		if r.StoreID == storeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockShiftRepo) TopProductsBetween(_ context.Context, _ uuid.UUID, _, _ time.Time, _ int) ([]entity.TopProduct, error) {
	return m.topProducts, nil
}

// --- Mock payment gateway ---

type mockGateway struct {
	verifyResult   bool
	verifyErr      error
	refundErr      error
	refundedAmount int64
	refundCalls    int
}

func (m *mockGateway) CreatePaymentIntent(_ context.Context, _ int64) (string, error) {
	return "cs_test_secret", nil
}

func (m *mockGateway) VerifyPaymentSucceeded(_ context.Context, _ string) (bool, error) {
	return m.verifyResult, m.verifyErr
}

func (m *mockGateway) RefundPayment(_ context.Context, _ string, amountMinorUnits int64, _ string) error {
	if m.refundErr != nil {
		return m.refundErr
	}
	m.refundCalls++
	m.refundedAmount = amountMinorUnits
	return nil
}
