package service

import (
	"context"
	"fmt"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/google/uuid"
)

// OrderService handles the ordering workflow: taking orders against
// tables (or online), amending line items, and transfers between tables.
type OrderService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	menuItemRepo  repository.MenuItemRepository
	tableRepo     repository.TableRepository
	customerRepo  repository.CustomerRepository
	inventory     *InventoryService
	audit         *AuditService
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	menuItemRepo repository.MenuItemRepository,
	tableRepo repository.TableRepository,
	customerRepo repository.CustomerRepository,
	inventory *InventoryService,
	audit *AuditService,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		menuItemRepo:  menuItemRepo,
		tableRepo:     tableRepo,
		customerRepo:  customerRepo,
		inventory:     inventory,
		audit:         audit,
	}
}

// OrderItemInput represents one requested order line
type OrderItemInput struct {
	MenuItemID uuid.UUID
	Quantity   int
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	UserID          uuid.UUID
	TableID         *uuid.UUID
	CustomerID      *uuid.UUID
	OrderType       enum.OrderType
	OnlineOrderInfo string
	Items           []OrderItemInput
}

// CreateOrder creates an order with its line items, reserves stock, and
// marks the table occupied.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order must have at least one item")
	}
	if !input.OrderType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid order type")
	}
	if input.OrderType == enum.OrderTypeRestaurant && input.TableID == nil {
		return nil, apperror.NewBadRequestError("Restaurant orders require a table")
	}

	if input.TableID != nil {
		table, err := s.tableRepo.GetByID(ctx, *input.TableID)
		if err != nil {
			return nil, err
		}
		if table == nil {
			return nil, apperror.NewNotFoundError("Table")
		}
	}
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	order := &entity.Order{
		CustomerID:      input.CustomerID,
		TableID:         input.TableID,
		Status:          enum.OrderStatusPending,
		PaymentStatus:   enum.PaymentStatusPending,
		OrderType:       input.OrderType,
		OnlineOrderInfo: input.OnlineOrderInfo,
		LastUpdatedByID: &input.UserID,
	}

	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		menuItem, err := s.menuItemRepo.GetByID(ctx, in.MenuItemID)
		if err != nil {
			return nil, err
		}
		if menuItem == nil {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Menu item %s", in.MenuItemID))
		}
		if !menuItem.Availability {
			return nil, apperror.NewConflictError(fmt.Sprintf("%s is not available", menuItem.Name))
		}

		order.Items = append(order.Items, entity.OrderItem{
			MenuItemID:        in.MenuItemID,
			Quantity:          in.Quantity,
			RemainingQuantity: in.Quantity,
			Price:             menuItem.Price,
			PreparedIn:        categoryPreparedIn(menuItem),
			Status:            enum.OrderStatusPending,
		})
	}

	order.CalculateTotals()
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		if err := s.inventory.Reserve(ctx, item.MenuItemID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if input.TableID != nil {
		if err := s.tableRepo.UpdateStatus(ctx, *input.TableID, enum.TableStatusOccupied); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, input.UserID, enum.AuditActionCreate, "Order", order.ID.String(),
		fmt.Sprintf("Order %s", order.ID), fmt.Sprintf("%d items", len(order.Items)))

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// UpdateItemsInput amends order line quantities. A quantity of zero
// removes the line; removing every line cancels the order.
type UpdateItemsInput struct {
	UserID uuid.UUID
	Items  []OrderItemInput
}

// UpdateItems changes quantities on an unpaid order. Lines with paid
// units cannot shrink below what has already been paid for.
func (s *OrderService) UpdateItems(ctx context.Context, orderID uuid.UUID, input *UpdateItemsInput) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.PaymentStatus == enum.PaymentStatusPaid {
		return nil, apperror.NewConflictError("Order is already paid")
	}
	if order.Status == enum.OrderStatusCancelled {
		return nil, apperror.NewConflictError("Order is cancelled")
	}

	current := make(map[uuid.UUID]*entity.OrderItem, len(order.Items))
	for i := range order.Items {
		current[order.Items[i].MenuItemID] = &order.Items[i]
	}

	for _, in := range input.Items {
		if in.Quantity < 0 {
			return nil, apperror.NewBadRequestError("Item quantity cannot be negative")
		}

		line, exists := current[in.MenuItemID]
		if !exists {
			if in.Quantity == 0 {
				continue
			}
			menuItem, err := s.menuItemRepo.GetByID(ctx, in.MenuItemID)
			if err != nil {
				return nil, err
			}
			if menuItem == nil {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Menu item %s", in.MenuItemID))
			}
			newItem := &entity.OrderItem{
				OrderID:           order.ID,
				MenuItemID:        in.MenuItemID,
				Quantity:          in.Quantity,
				RemainingQuantity: in.Quantity,
				Price:             menuItem.Price,
				PreparedIn:        categoryPreparedIn(menuItem),
				Status:            enum.OrderStatusPending,
			}
			if err := s.orderItemRepo.Create(ctx, newItem); err != nil {
				return nil, err
			}
			if err := s.inventory.Reserve(ctx, in.MenuItemID, in.Quantity); err != nil {
				return nil, err
			}
			continue
		}

		paidUnits := line.Quantity - line.RemainingQuantity
		if in.Quantity < paidUnits {
			return nil, apperror.NewConflictError("Cannot reduce a line below its paid quantity")
		}

		delta := in.Quantity - line.Quantity
		if delta == 0 {
			continue
		}

		if in.Quantity == 0 {
			if err := s.orderItemRepo.Delete(ctx, line.ID); err != nil {
				return nil, err
			}
		} else {
			line.RemainingQuantity += delta
			line.Quantity = in.Quantity
			if err := s.orderItemRepo.Update(ctx, line); err != nil {
				return nil, err
			}
		}

		if delta > 0 {
			if err := s.inventory.Reserve(ctx, in.MenuItemID, delta); err != nil {
				return nil, err
			}
		} else {
			if err := s.inventory.Release(ctx, in.MenuItemID, -delta); err != nil {
				return nil, err
			}
		}
	}

	// Reload lines, recompute totals, and cancel if nothing is left.
	items, err := s.orderItemRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	order.LastUpdatedByID = &input.UserID
	if len(items) == 0 {
		order.Status = enum.OrderStatusCancelled
		order.CalculateTotals()
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
		if err := s.freeTableIfIdle(ctx, order); err != nil {
			return nil, err
		}
	} else {
		order.CalculateTotals()
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, input.UserID, enum.AuditActionUpdate, "Order", order.ID.String(),
		fmt.Sprintf("Order %s", order.ID), "items amended")

	return s.orderRepo.GetWithItems(ctx, orderID)
}

// TransferInput moves an order (and its items) to a different table.
type TransferInput struct {
	UserID  uuid.UUID
	TableID uuid.UUID
}

// Transfer moves an unpaid order to another table, updating both
// tables' occupancy.
func (s *OrderService) Transfer(ctx context.Context, orderID uuid.UUID, input *TransferInput) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.PaymentStatus == enum.PaymentStatusPaid || order.Status == enum.OrderStatusCancelled {
		return nil, apperror.NewConflictError("Order is closed")
	}
	if order.TableID == nil {
		return nil, apperror.NewBadRequestError("Online orders have no table")
	}

	target, err := s.tableRepo.GetByID(ctx, input.TableID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	oldTableID := *order.TableID
	order.TableID = &input.TableID
	order.LastUpdatedByID = &input.UserID
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err := s.tableRepo.UpdateStatus(ctx, input.TableID, enum.TableStatusOccupied); err != nil {
		return nil, err
	}
	remaining, err := s.orderRepo.GetOpenByTable(ctx, oldTableID)
	if err != nil {
		return nil, err
	}
	if len(remaining) == 0 {
		if err := s.tableRepo.UpdateStatus(ctx, oldTableID, enum.TableStatusAvailable); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, input.UserID, enum.AuditActionUpdate, "Order", order.ID.String(),
		fmt.Sprintf("Order %s", order.ID), fmt.Sprintf("transferred to table %d", target.Number))

	return s.orderRepo.GetWithItems(ctx, orderID)
}

// UpdateStatus advances the kitchen-facing order status.
func (s *OrderService) UpdateStatus(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, status enum.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid order status")
	}
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if status == enum.OrderStatusCancelled {
		return s.cancelOrder(ctx, userID, order)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "Order", orderID.String(),
		fmt.Sprintf("Order %s", orderID), string(status))
	return s.orderRepo.GetWithItems(ctx, orderID)
}

func (s *OrderService) cancelOrder(ctx context.Context, userID uuid.UUID, order *entity.Order) (*entity.Order, error) {
	if order.TotalPaid > 0 {
		return nil, apperror.NewConflictError("Order has payments; issue a credit note instead")
	}

	for _, item := range order.Items {
		if err := s.inventory.Release(ctx, item.MenuItemID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, enum.OrderStatusCancelled); err != nil {
		return nil, err
	}
	if err := s.freeTableIfIdle(ctx, order); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "Order", order.ID.String(),
		fmt.Sprintf("Order %s", order.ID), "cancelled")
	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// DeleteOrder soft-deletes an unpaid pending order (mistake entry).
func (s *OrderService) DeleteOrder(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.TotalPaid > 0 {
		return apperror.NewConflictError("Order has payments and cannot be deleted")
	}

	for _, item := range order.Items {
		if err := s.inventory.Release(ctx, item.MenuItemID, item.Quantity); err != nil {
			return err
		}
	}
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}
	if err := s.freeTableIfIdle(ctx, order); err != nil {
		return err
	}

	s.audit.Record(ctx, userID, enum.AuditActionDelete, "Order", orderID.String(),
		fmt.Sprintf("Order %s", orderID), "")
	return nil
}

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

func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

// freeTableIfIdle releases the order's table when no other unpaid
// orders remain on it.
func (s *OrderService) freeTableIfIdle(ctx context.Context, order *entity.Order) error {
	if order.TableID == nil {
		return nil
	}
	open, err := s.orderRepo.GetOpenByTable(ctx, *order.TableID)
	if err != nil {
		return err
	}
	for _, o := range open {
		if o.ID != order.ID {
			return nil
		}
	}
	return s.tableRepo.UpdateStatus(ctx, *order.TableID, enum.TableStatusAvailable)
}

func categoryPreparedIn(item *entity.MenuItem) enum.PreparedIn {
	if item.Category != nil && item.Category.PreparedIn != "" {
		return item.Category.PreparedIn
	}
	return enum.PreparedInBoth
}
