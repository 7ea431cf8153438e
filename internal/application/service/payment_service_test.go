package service

import (
	"context"
	"testing"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentTestEnv struct {
	svc           *PaymentService
	paymentRepo   *mockPaymentRepo
	paymentItems  *mockPaymentItemRepo
	orderRepo     *mockOrderRepo
	orderItemRepo *mockOrderItemRepo
	registerRepo  *mockRegisterRepo
	tableRepo     *mockTableRepo
	inventoryRepo *mockInventoryRepo
}

func newPaymentTestEnv() *paymentTestEnv {
	env := &paymentTestEnv{
		paymentRepo:   &mockPaymentRepo{},
		paymentItems:  &mockPaymentItemRepo{},
		orderRepo:     newMockOrderRepo(),
		orderItemRepo: newMockOrderItemRepo(),
		registerRepo:  newMockRegisterRepo(),
		tableRepo:     newMockTableRepo(),
		inventoryRepo: &mockInventoryRepo{},
	}
	audit := NewAuditService(&mockLogRepo{})
	companyRepo := &mockCompanyRepo{settings: testSettings()}
	fiscal := NewFiscalService(env.paymentRepo, env.orderRepo, companyRepo, audit, mockTxManager{})
	inventory := NewInventoryService(env.inventoryRepo, newMockMenuItemRepo(), audit)
	env.svc = NewPaymentService(
		env.paymentRepo, env.paymentItems, env.orderRepo, env.orderItemRepo,
		env.registerRepo, env.tableRepo, fiscal, inventory, audit, mockTxManager{},
	)
	return env
}

func (e *paymentTestEnv) openRegister(t *testing.T, operatorID uuid.UUID) *entity.CashRegister {
	t.Helper()
	register := &entity.CashRegister{UserID: operatorID, InitialAmount: 50000, IsOpen: true}
	require.NoError(t, e.registerRepo.Create(context.Background(), register))
	return register
}

// seedOrder stores an order with two lines: 2 x 10.00 and 1 x 5.00.
func (e *paymentTestEnv) seedOrder(t *testing.T, tableID *uuid.UUID) *entity.Order {
	t.Helper()
	order := &entity.Order{
		ID:        uuid.New(),
		TableID:   tableID,
		OrderType: enum.OrderTypeRestaurant,
		Status:    enum.OrderStatusPending,
		Items: []entity.OrderItem{
			{MenuItemID: uuid.New(), Quantity: 2, RemainingQuantity: 2, Price: 1000},
			{MenuItemID: uuid.New(), Quantity: 1, RemainingQuantity: 1, Price: 500},
		},
	}
	order.CalculateTotals()
	require.NoError(t, e.orderRepo.Create(context.Background(), order))
	for i := range order.Items {
		require.NoError(t, e.orderItemRepo.Create(context.Background(), &order.Items[i]))
	}
	return order
}

func TestProcessPayment_RequiresOpenRegister(t *testing.T) {
	env := newPaymentTestEnv()
	order := env.seedOrder(t, nil)

	_, err := env.svc.ProcessPayment(context.Background(), &ProcessPaymentInput{
		UserID:   uuid.New(),
		OrderID:  order.ID,
		Manual:   true,
		Amount:   1000,
		Tendered: 1000,
		Method:   enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cash register")
}

func TestProcessPayment_SelectionAddsIVAAndDecrementsLines(t *testing.T) {
	env := newPaymentTestEnv()
	operatorID := uuid.New()
	register := env.openRegister(t, operatorID)
	order := env.seedOrder(t, nil)

	// Pay for both units of the first line: 20.00 + 15% IVA = 23.00
	result, err := env.svc.ProcessPayment(context.Background(), &ProcessPaymentInput{
		UserID:   operatorID,
		OrderID:  order.ID,
		Items:    map[uuid.UUID]int{order.Items[0].ID: 2},
		Tendered: 5000,
		Method:   enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2300), result.Payment.Amount)
	assert.Equal(t, int64(2700), result.ChangeDue)
	assert.True(t, result.Payment.IsSigned)
	assert.Equal(t, enum.InvoiceTypeInvoiceReceipt, result.Payment.InvoiceType)

	// Line decremented and coverage row stored
	assert.Equal(t, 2, env.orderItemRepo.decremented[order.Items[0].ID])
	require.Len(t, env.paymentItems.items, 1)
	assert.Equal(t, int64(1000), env.paymentItems.items[0].UnitPrice)

	// Order is partially paid; register booked the amount as cash
	assert.Equal(t, enum.PaymentStatusPartiallyPaid, order.PaymentStatus)
	assert.Equal(t, int64(2300), order.TotalPaid)
	assert.Equal(t, int64(2300), register.OperationsCash)
}

func TestProcessPayment_SelectionCannotExceedRemaining(t *testing.T) {
	env := newPaymentTestEnv()
	operatorID := uuid.New()
	env.openRegister(t, operatorID)
	order := env.seedOrder(t, nil)

	_, err := env.svc.ProcessPayment(context.Background(), &ProcessPaymentInput{
		UserID:   operatorID,
		OrderID:  order.ID,
		Items:    map[uuid.UUID]int{order.Items[1].ID: 2}, // only 1 unit remains
		Tendered: 5000,
		Method:   enum.PaymentMethodCash,
	})
	assert.Error(t, err)
}

func TestProcessPayment_ManualCappedAtRemainingBalance(t *testing.T) {
	env := newPaymentTestEnv()
	operatorID := uuid.New()
	env.openRegister(t, operatorID)
	order := env.seedOrder(t, nil) // grand total 28.75

	_, err := env.svc.ProcessPayment(context.Background(), &ProcessPaymentInput{
		UserID:   operatorID,
		OrderID:  order.ID,
		Manual:   true,
		Amount:   order.GrandTotal + 1,
		Tendered: order.GrandTotal + 1,
		Method:   enum.PaymentMethodCash,
	})
	assert.Error(t, err)
}

func TestProcessPayment_FullManualPaymentFreesTable(t *testing.T) {
	env := newPaymentTestEnv()
	operatorID := uuid.New()
	env.openRegister(t, operatorID)

	tableID := uuid.New()
	order := env.seedOrder(t, &tableID)
	env.orderRepo.openByTable[tableID] = []entity.Order{*order}

	result, err := env.svc.ProcessPayment(context.Background(), &ProcessPaymentInput{
		UserID:   operatorID,
		OrderID:  order.ID,
		Manual:   true,
		Amount:   order.GrandTotal,
		Tendered: order.GrandTotal,
		Method:   enum.PaymentMethodDebitCard,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.ChangeDue)
	assert.Equal(t, enum.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, enum.TableStatusAvailable, env.tableRepo.statuses[tableID])
}

func TestProcessPayment_NoChangeOnCardTenders(t *testing.T) {
	env := newPaymentTestEnv()
	operatorID := uuid.New()
	env.openRegister(t, operatorID)
	order := env.seedOrder(t, nil)

	result, err := env.svc.ProcessPayment(context.Background(), &ProcessPaymentInput{
		UserID:   operatorID,
		OrderID:  order.ID,
		Manual:   true,
		Amount:   1000,
		Tendered: 5000,
		Method:   enum.PaymentMethodCreditCard,
	})
	require.NoError(t, err)

	// Card terminals charge the exact amount; nothing is handed back.
	assert.Equal(t, int64(0), result.ChangeDue)
	assert.Equal(t, int64(1000), result.Payment.Amount)
}

func TestProcessPayment_TableStaysOccupiedWithOtherOpenOrders(t *testing.T) {
	env := newPaymentTestEnv()
	operatorID := uuid.New()
	env.openRegister(t, operatorID)

	tableID := uuid.New()
	order := env.seedOrder(t, &tableID)
	other := env.seedOrder(t, &tableID)
	env.orderRepo.openByTable[tableID] = []entity.Order{*order, *other}

	_, err := env.svc.ProcessPayment(context.Background(), &ProcessPaymentInput{
		UserID:   operatorID,
		OrderID:  order.ID,
		Manual:   true,
		Amount:   order.GrandTotal,
		Tendered: order.GrandTotal,
		Method:   enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	_, freed := env.tableRepo.statuses[tableID]
	assert.False(t, freed)
}

func TestProcessPayment_RejectsCreditNoteType(t *testing.T) {
	env := newPaymentTestEnv()
	operatorID := uuid.New()
	env.openRegister(t, operatorID)
	order := env.seedOrder(t, nil)

	_, err := env.svc.ProcessPayment(context.Background(), &ProcessPaymentInput{
		UserID:      operatorID,
		OrderID:     order.ID,
		Manual:      true,
		Amount:      1000,
		Tendered:    1000,
		Method:      enum.PaymentMethodCash,
		InvoiceType: enum.InvoiceTypeCreditNote,
	})
	assert.Error(t, err)
}

func TestProcessPayment_RejectsFullyPaidOrder(t *testing.T) {
	env := newPaymentTestEnv()
	operatorID := uuid.New()
	env.openRegister(t, operatorID)
	order := env.seedOrder(t, nil)
	order.TotalPaid = order.GrandTotal

	_, err := env.svc.ProcessPayment(context.Background(), &ProcessPaymentInput{
		UserID:   operatorID,
		OrderID:  order.ID,
		Manual:   true,
		Amount:   100,
		Tendered: 100,
		Method:   enum.PaymentMethodCash,
	})
	assert.Error(t, err)
}

func TestResolveSelection_EmptySelection(t *testing.T) {
	order := &entity.Order{Items: []entity.OrderItem{{ID: uuid.New(), RemainingQuantity: 1, Price: 100}}}

	_, _, err := resolveSelection(order, nil)
	assert.Error(t, err)
}

func TestResolveSelection_UnknownLine(t *testing.T) {
	order := &entity.Order{Items: []entity.OrderItem{{ID: uuid.New(), RemainingQuantity: 1, Price: 100}}}

	_, _, err := resolveSelection(order, map[uuid.UUID]int{uuid.New(): 1})
	assert.Error(t, err)
}
