package service

import (
	"context"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/google/uuid"
)

// mockLogRepo implements repository.OperationLogRepository for testing
type mockLogRepo struct {
	entries []entity.OperationLog
}

func (m *mockLogRepo) Create(_ context.Context, log *entity.OperationLog) error {
	m.entries = append(m.entries, *log)
	return nil
}

func (m *mockLogRepo) List(_ context.Context, _ *repository.OperationLogFilterParams) ([]entity.OperationLog, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

func (m *mockLogRepo) GetByObject(_ context.Context, entityType, objectID string) ([]entity.OperationLog, error) {
	var out []entity.OperationLog
	for _, e := range m.entries {
		if e.EntityType == entityType && e.ObjectID == objectID {
			out = append(out, e)
		}
	}
	return out, nil
}

// mockCompanyRepo implements repository.CompanySettingsRepository for testing
type mockCompanyRepo struct {
	settings *entity.CompanySettings
}

func (m *mockCompanyRepo) Get(_ context.Context) (*entity.CompanySettings, error) {
	return m.settings, nil
}

func (m *mockCompanyRepo) Update(_ context.Context, settings *entity.CompanySettings) error {
	m.settings = settings
	return nil
}

// mockPaymentRepo implements repository.PaymentRepository for testing
type mockPaymentRepo struct {
	payments      []*entity.Payment
	getByOrderErr error
}

func (m *mockPaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	m.payments = append(m.payments, payment)
	return nil
}

func (m *mockPaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	for _, p := range m.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPaymentRepo) GetByInvoiceNo(_ context.Context, invoiceNo string) (*entity.Payment, error) {
	for _, p := range m.payments {
		if p.InvoiceNo == invoiceNo {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPaymentRepo) GetByIUD(_ context.Context, iud string) (*entity.Payment, error) {
	for _, p := range m.payments {
		if p.IUD == iud {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPaymentRepo) Update(_ context.Context, _ *entity.Payment) error {
	return nil
}

func (m *mockPaymentRepo) List(_ context.Context, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var out []entity.Payment
	for _, p := range m.payments {
		if params.OrderID != nil && p.OrderID != *params.OrderID {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *mockPaymentRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	if m.getByOrderErr != nil {
		return nil, m.getByOrderErr
	}
	var out []entity.Payment
	for _, p := range m.payments {
		if p.OrderID == orderID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPaymentRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	for _, p := range m.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPaymentRepo) GetLastSigned(_ context.Context, invoiceType enum.InvoiceType) (*entity.Payment, error) {
	for i := len(m.payments) - 1; i >= 0; i-- {
		if m.payments[i].IsSigned && m.payments[i].InvoiceType == invoiceType {
			return m.payments[i], nil
		}
	}
	return nil, nil
}

func (m *mockPaymentRepo) CountByTypeAndYear(_ context.Context, invoiceType enum.InvoiceType, year int) (int64, error) {
	var count int64
	for _, p := range m.payments {
		if p.IsSigned && p.InvoiceType == invoiceType && p.InvoiceDate != nil && p.InvoiceDate.Year() == year {
			count++
		}
	}
	return count, nil
}

func (m *mockPaymentRepo) ListSignedBetween(_ context.Context, start, end time.Time) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range m.payments {
		if !p.IsSigned || p.InvoiceDate == nil {
			continue
		}
		if p.InvoiceDate.Before(start) || !p.InvoiceDate.Before(end) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// mockPaymentItemRepo implements repository.PaymentItemRepository for testing
type mockPaymentItemRepo struct {
	items []entity.PaymentItem
}

func (m *mockPaymentItemRepo) CreateBatch(_ context.Context, items []entity.PaymentItem) error {
	m.items = append(m.items, items...)
	return nil
}

func (m *mockPaymentItemRepo) GetByPaymentID(_ context.Context, paymentID uuid.UUID) ([]entity.PaymentItem, error) {
	var out []entity.PaymentItem
	for _, i := range m.items {
		if i.PaymentID == paymentID {
			out = append(out, i)
		}
	}
	return out, nil
}

// mockOrderRepo implements repository.OrderRepository for testing
type mockOrderRepo struct {
	orders      map[uuid.UUID]*entity.Order
	openByTable map[uuid.UUID][]entity.Order
	deleted     []uuid.UUID
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		orders:      make(map[uuid.UUID]*entity.Order),
		openByTable: make(map[uuid.UUID][]entity.Order),
	}
}

func (m *mockOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return m.orders[id], nil
}

func (m *mockOrderRepo) Update(_ context.Context, order *entity.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.orders, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockOrderRepo) List(_ context.Context, _ *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (m *mockOrderRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return m.orders[id], nil
}

func (m *mockOrderRepo) GetOpenByTable(_ context.Context, tableID uuid.UUID) ([]entity.Order, error) {
	return m.openByTable[tableID], nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if o, ok := m.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (m *mockOrderRepo) UpdatePaymentStatus(_ context.Context, id uuid.UUID, status enum.PaymentStatus, totalPaid int64) error {
	if o, ok := m.orders[id]; ok {
		o.PaymentStatus = status
		o.TotalPaid = totalPaid
	}
	return nil
}

func (m *mockOrderRepo) GetUnpaidOrders(_ context.Context, _ *pagination.PaginationParams) ([]entity.Order, int64, error) {
	return nil, 0, nil
}

// mockOrderItemRepo implements repository.OrderItemRepository for testing
type mockOrderItemRepo struct {
	items       map[uuid.UUID]*entity.OrderItem
	decremented map[uuid.UUID]int
}

func newMockOrderItemRepo() *mockOrderItemRepo {
	return &mockOrderItemRepo{
		items:       make(map[uuid.UUID]*entity.OrderItem),
		decremented: make(map[uuid.UUID]int),
	}
}

func (m *mockOrderItemRepo) Create(_ context.Context, item *entity.OrderItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockOrderItemRepo) CreateBatch(_ context.Context, items []entity.OrderItem) error {
	for i := range items {
		if err := m.Create(context.Background(), &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockOrderItemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.OrderItem, error) {
	return m.items[id], nil
}

func (m *mockOrderItemRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	var out []entity.OrderItem
	for _, i := range m.items {
		if i.OrderID == orderID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *mockOrderItemRepo) Update(_ context.Context, item *entity.OrderItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockOrderItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockOrderItemRepo) DeleteByOrderID(_ context.Context, orderID uuid.UUID) error {
	for id, i := range m.items {
		if i.OrderID == orderID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *mockOrderItemRepo) DecrementRemaining(_ context.Context, id uuid.UUID, quantity int) error {
	m.decremented[id] += quantity
	if i, ok := m.items[id]; ok {
		i.RemainingQuantity -= quantity
	}
	return nil
}

// mockRegisterRepo implements repository.CashRegisterRepository for testing
type mockRegisterRepo struct {
	sessions map[uuid.UUID]*entity.CashRegister
}

func newMockRegisterRepo() *mockRegisterRepo {
	return &mockRegisterRepo{sessions: make(map[uuid.UUID]*entity.CashRegister)}
}

func (m *mockRegisterRepo) Create(_ context.Context, register *entity.CashRegister) error {
	if register.ID == uuid.Nil {
		register.ID = uuid.New()
	}
	m.sessions[register.ID] = register
	return nil
}

func (m *mockRegisterRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.CashRegister, error) {
	return m.sessions[id], nil
}

func (m *mockRegisterRepo) Update(_ context.Context, register *entity.CashRegister) error {
	m.sessions[register.ID] = register
	return nil
}

func (m *mockRegisterRepo) GetOpenByOperator(_ context.Context, operatorID uuid.UUID) (*entity.CashRegister, error) {
	for _, r := range m.sessions {
		if r.UserID == operatorID && r.IsOpen {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockRegisterRepo) List(_ context.Context, _ *repository.CashRegisterFilterParams) ([]entity.CashRegister, int64, error) {
	var out []entity.CashRegister
	for _, r := range m.sessions {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

// mockTableRepo implements repository.TableRepository for testing
type mockTableRepo struct {
	tables   map[uuid.UUID]*entity.Table
	statuses map[uuid.UUID]enum.TableStatus
}

func newMockTableRepo() *mockTableRepo {
	return &mockTableRepo{
		tables:   make(map[uuid.UUID]*entity.Table),
		statuses: make(map[uuid.UUID]enum.TableStatus),
	}
}

func (m *mockTableRepo) Create(_ context.Context, table *entity.Table) error {
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	m.tables[table.ID] = table
	return nil
}

func (m *mockTableRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Table, error) {
	return m.tables[id], nil
}

func (m *mockTableRepo) GetByNumber(_ context.Context, number int) (*entity.Table, error) {
	for _, t := range m.tables {
		if t.Number == number {
			return t, nil
		}
	}
	return nil, nil
}

func (m *mockTableRepo) Update(_ context.Context, table *entity.Table) error {
	m.tables[table.ID] = table
	return nil
}

func (m *mockTableRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.tables, id)
	return nil
}

func (m *mockTableRepo) List(_ context.Context, _ *enum.TableStatus) ([]entity.Table, error) {
	var out []entity.Table
	for _, t := range m.tables {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockTableRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.TableStatus) error {
	m.statuses[id] = status
	if t, ok := m.tables[id]; ok {
		t.Status = status
	}
	return nil
}

// mockInventoryRepo implements repository.InventoryRepository for testing
type mockInventoryRepo struct {
	items []*entity.InventoryItem
}

func (m *mockInventoryRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	m.items = append(m.items, item)
	return nil
}

func (m *mockInventoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	for _, i := range m.items {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, nil
}

func (m *mockInventoryRepo) GetByMenuItemID(_ context.Context, menuItemID uuid.UUID) (*entity.InventoryItem, error) {
	for _, i := range m.items {
		if i.MenuItemID == menuItemID {
			return i, nil
		}
	}
	return nil, nil
}

func (m *mockInventoryRepo) Update(_ context.Context, _ *entity.InventoryItem) error {
	return nil
}

func (m *mockInventoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for n, i := range m.items {
		if i.ID == id {
			m.items = append(m.items[:n], m.items[n+1:]...)
			break
		}
	}
	return nil
}

func (m *mockInventoryRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.InventoryItem, int64, error) {
	var out []entity.InventoryItem
	for _, i := range m.items {
		out = append(out, *i)
	}
	return out, int64(len(out)), nil
}

func (m *mockInventoryRepo) ListLowStock(_ context.Context, threshold int) ([]entity.InventoryItem, error) {
	var out []entity.InventoryItem
	for _, i := range m.items {
		if i.Quantity-i.ReservedQuantity <= threshold {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *mockInventoryRepo) AdjustQuantities(_ context.Context, id uuid.UUID, quantityDelta, reservedDelta, oversellDelta int) error {
	for _, i := range m.items {
		if i.ID == id {
			i.Quantity += quantityDelta
			i.ReservedQuantity += reservedDelta
			i.OversellQuantity += oversellDelta
			return nil
		}
	}
	return nil
}

// mockMenuItemRepo implements repository.MenuItemRepository for testing
type mockMenuItemRepo struct {
	items map[uuid.UUID]*entity.MenuItem
}

func newMockMenuItemRepo() *mockMenuItemRepo {
	return &mockMenuItemRepo{items: make(map[uuid.UUID]*entity.MenuItem)}
}

func (m *mockMenuItemRepo) Create(_ context.Context, item *entity.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockMenuItemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	return m.items[id], nil
}

func (m *mockMenuItemRepo) Update(_ context.Context, item *entity.MenuItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockMenuItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockMenuItemRepo) List(_ context.Context, _ *repository.MenuItemFilterParams) ([]entity.MenuItem, int64, error) {
	var out []entity.MenuItem
	for _, i := range m.items {
		out = append(out, *i)
	}
	return out, int64(len(out)), nil
}

func (m *mockMenuItemRepo) ListAvailable(_ context.Context, _ *uuid.UUID) ([]entity.MenuItem, error) {
	var out []entity.MenuItem
	for _, i := range m.items {
		if i.Availability {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *mockMenuItemRepo) SetAvailability(_ context.Context, id uuid.UUID, available bool) error {
	if i, ok := m.items[id]; ok {
		i.Availability = available
	}
	return nil
}

// mockCustomerRepo implements repository.CustomerRepository for testing
type mockCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
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

func (m *mockCustomerRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Customer, error) {
	for _, c := range m.customers {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.customers, id)
	return nil
}

func (m *mockCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range m.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

// mockTxManager runs the unit directly; rollback is covered by the
// integration path against a real database.
type mockTxManager struct{}

func (mockTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testSettings() *entity.CompanySettings {
	return &entity.CompanySettings{
		ID:                    uuid.New(),
		CompanyName:           "Restaurante Mar Azul",
		TaxRegistrationNumber: "251234567",
		InvoiceSeries:         "FT A",
		CreditNoteSeries:      "NC A",
		ReceiptSeries:         "TV A",
		CurrencyCode:          "CVE",
	}
}
