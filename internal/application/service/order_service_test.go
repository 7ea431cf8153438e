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

type orderTestEnv struct {
	svc           *OrderService
	orderRepo     *mockOrderRepo
	orderItemRepo *mockOrderItemRepo
	menuItemRepo  *mockMenuItemRepo
	tableRepo     *mockTableRepo
	inventoryRepo *mockInventoryRepo
}

func newOrderTestEnv() *orderTestEnv {
	env := &orderTestEnv{
		orderRepo:     newMockOrderRepo(),
		orderItemRepo: newMockOrderItemRepo(),
		menuItemRepo:  newMockMenuItemRepo(),
		tableRepo:     newMockTableRepo(),
		inventoryRepo: &mockInventoryRepo{},
	}
	audit := NewAuditService(&mockLogRepo{})
	inventory := NewInventoryService(env.inventoryRepo, env.menuItemRepo, audit)
	env.svc = NewOrderService(
		env.orderRepo, env.orderItemRepo, env.menuItemRepo,
		env.tableRepo, newMockCustomerRepo(), inventory, audit,
	)
	return env
}

func (e *orderTestEnv) seedMenuItem(t *testing.T, name string, price int64) *entity.MenuItem {
	t.Helper()
	item := &entity.MenuItem{
		Name:         name,
		Price:        price,
		Availability: true,
		Category:     &entity.MenuCategory{Name: "Pratos", PreparedIn: enum.PreparedInKitchen},
	}
	require.NoError(t, e.menuItemRepo.Create(context.Background(), item))
	return item
}

func (e *orderTestEnv) seedTable(t *testing.T) *entity.Table {
	t.Helper()
	table := &entity.Table{Number: 7, Capacity: 4, Status: enum.TableStatusAvailable}
	require.NoError(t, e.tableRepo.Create(context.Background(), table))
	return table
}

func TestCreateOrder_ComputesTotalsAndOccupiesTable(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()
	dish := env.seedMenuItem(t, "Cachupa", 1200)
	drink := env.seedMenuItem(t, "Sumo", 300)
	table := env.seedTable(t)

	// Track a stock row for the drink so reservation is observable
	stock := &entity.InventoryItem{MenuItemID: drink.ID, Quantity: 10}
	require.NoError(t, env.inventoryRepo.Create(ctx, stock))

	order, err := env.svc.CreateOrder(ctx, &CreateOrderInput{
		UserID:    uuid.New(),
		TableID:   &table.ID,
		OrderType: enum.OrderTypeRestaurant,
		Items: []OrderItemInput{
			{MenuItemID: dish.ID, Quantity: 2},
			{MenuItemID: drink.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	// 2 x 12.00 + 3 x 3.00 = 33.00; IVA 15% = 4.95; grand 37.95
	assert.Equal(t, int64(3300), order.TotalAmount)
	assert.Equal(t, int64(495), order.TotalIVA)
	assert.Equal(t, int64(3795), order.GrandTotal)
	require.Len(t, order.Items, 2)
	assert.Equal(t, enum.PreparedInKitchen, order.Items[0].PreparedIn)
	assert.Equal(t, order.Items[0].Quantity, order.Items[0].RemainingQuantity)

	assert.Equal(t, enum.TableStatusOccupied, env.tableRepo.statuses[table.ID])
	assert.Equal(t, 3, stock.ReservedQuantity)
}

func TestCreateOrder_RequiresTableForRestaurantOrders(t *testing.T) {
	env := newOrderTestEnv()
	dish := env.seedMenuItem(t, "Cachupa", 1200)

	_, err := env.svc.CreateOrder(context.Background(), &CreateOrderInput{
		UserID:    uuid.New(),
		OrderType: enum.OrderTypeRestaurant,
		Items:     []OrderItemInput{{MenuItemID: dish.ID, Quantity: 1}},
	})
	assert.Error(t, err)
}

func TestCreateOrder_RejectsUnavailableItem(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()
	dish := env.seedMenuItem(t, "Lagosta", 5000)
	dish.Availability = false
	table := env.seedTable(t)

	_, err := env.svc.CreateOrder(ctx, &CreateOrderInput{
		UserID:    uuid.New(),
		TableID:   &table.ID,
		OrderType: enum.OrderTypeRestaurant,
		Items:     []OrderItemInput{{MenuItemID: dish.ID, Quantity: 1}},
	})
	assert.Error(t, err)
}

func TestUpdateItems_CannotShrinkBelowPaidUnits(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()
	dish := env.seedMenuItem(t, "Cachupa", 1200)
	table := env.seedTable(t)

	order, err := env.svc.CreateOrder(ctx, &CreateOrderInput{
		UserID:    uuid.New(),
		TableID:   &table.ID,
		OrderType: enum.OrderTypeRestaurant,
		Items:     []OrderItemInput{{MenuItemID: dish.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	// Two units already paid for
	order.Items[0].RemainingQuantity = 1

	_, err = env.svc.UpdateItems(ctx, order.ID, &UpdateItemsInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{MenuItemID: dish.ID, Quantity: 1}},
	})
	assert.Error(t, err)
}

func TestUpdateItems_RemovingEveryLineCancelsOrder(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()
	dish := env.seedMenuItem(t, "Cachupa", 1200)
	table := env.seedTable(t)

	order, err := env.svc.CreateOrder(ctx, &CreateOrderInput{
		UserID:    uuid.New(),
		TableID:   &table.ID,
		OrderType: enum.OrderTypeRestaurant,
		Items:     []OrderItemInput{{MenuItemID: dish.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	updated, err := env.svc.UpdateItems(ctx, order.ID, &UpdateItemsInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{MenuItemID: dish.ID, Quantity: 0}},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusCancelled, updated.Status)
	assert.Equal(t, int64(0), updated.GrandTotal)
	assert.Equal(t, enum.TableStatusAvailable, env.tableRepo.statuses[table.ID])
}

func TestUpdateStatus_CancelBlockedAfterPayment(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()
	dish := env.seedMenuItem(t, "Cachupa", 1200)
	table := env.seedTable(t)

	order, err := env.svc.CreateOrder(ctx, &CreateOrderInput{
		UserID:    uuid.New(),
		TableID:   &table.ID,
		OrderType: enum.OrderTypeRestaurant,
		Items:     []OrderItemInput{{MenuItemID: dish.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	order.TotalPaid = 500

	_, err = env.svc.UpdateStatus(ctx, uuid.New(), order.ID, enum.OrderStatusCancelled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credit note")
}

func TestUpdateStatus_CancelReleasesStock(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()
	dish := env.seedMenuItem(t, "Cachupa", 1200)
	table := env.seedTable(t)

	stock := &entity.InventoryItem{MenuItemID: dish.ID, Quantity: 10}
	require.NoError(t, env.inventoryRepo.Create(ctx, stock))

	order, err := env.svc.CreateOrder(ctx, &CreateOrderInput{
		UserID:    uuid.New(),
		TableID:   &table.ID,
		OrderType: enum.OrderTypeRestaurant,
		Items:     []OrderItemInput{{MenuItemID: dish.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, stock.ReservedQuantity)

	cancelled, err := env.svc.UpdateStatus(ctx, uuid.New(), order.ID, enum.OrderStatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 0, stock.ReservedQuantity)
	assert.Equal(t, enum.TableStatusAvailable, env.tableRepo.statuses[table.ID])
}

func TestTransfer_MovesOrderBetweenTables(t *testing.T) {
	env := newOrderTestEnv()
	ctx := context.Background()
	dish := env.seedMenuItem(t, "Cachupa", 1200)
	source := env.seedTable(t)
	target := &entity.Table{Number: 9, Capacity: 2, Status: enum.TableStatusAvailable}
	require.NoError(t, env.tableRepo.Create(ctx, target))

	order, err := env.svc.CreateOrder(ctx, &CreateOrderInput{
		UserID:    uuid.New(),
		TableID:   &source.ID,
		OrderType: enum.OrderTypeRestaurant,
		Items:     []OrderItemInput{{MenuItemID: dish.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	moved, err := env.svc.Transfer(ctx, order.ID, &TransferInput{UserID: uuid.New(), TableID: target.ID})
	require.NoError(t, err)

	require.NotNil(t, moved.TableID)
	assert.Equal(t, target.ID, *moved.TableID)
	assert.Equal(t, enum.TableStatusOccupied, env.tableRepo.statuses[target.ID])
	assert.Equal(t, enum.TableStatusAvailable, env.tableRepo.statuses[source.ID])
}
