package service

import (
	"context"
	"fmt"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/google/uuid"
)

// InventoryService tracks stock for quantifiable menu items. Ordering
// reserves stock, paying consumes it, cancelling releases it. Stock is
// allowed to go oversold rather than blocking a sale; the oversell
// counter records how far.
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	menuItemRepo  repository.MenuItemRepository
	audit         *AuditService
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	menuItemRepo repository.MenuItemRepository,
	audit *AuditService,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		menuItemRepo:  menuItemRepo,
		audit:         audit,
	}
}

func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}
	return item, nil
}

func (s *InventoryService) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.InventoryItem, int64, error) {
	return s.inventoryRepo.List(ctx, params, search)
}

func (s *InventoryService) ListLowStock(ctx context.Context, threshold int) ([]entity.InventoryItem, error) {
	if threshold <= 0 {
		threshold = 5
	}
	return s.inventoryRepo.ListLowStock(ctx, threshold)
}

// Adjust sets a manual stock correction (stocktake, waste, breakage).
func (s *InventoryService) Adjust(ctx context.Context, userID uuid.UUID, id uuid.UUID, delta int, reason string) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}
	if item.Quantity+delta < 0 {
		return nil, apperror.NewBadRequestError("Adjustment would make stock negative")
	}

	if err := s.inventoryRepo.AdjustQuantities(ctx, id, delta, 0, 0); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "InventoryItem", id.String(),
		itemName(item), fmt.Sprintf("adjust %+d: %s", delta, reason))
	return s.inventoryRepo.GetByID(ctx, id)
}

// Reserve commits stock to an unpaid order line. Ordering more than is
// on hand is allowed; the shortfall is recorded as oversell.
func (s *InventoryService) Reserve(ctx context.Context, menuItemID uuid.UUID, quantity int) error {
	item, err := s.inventoryRepo.GetByMenuItemID(ctx, menuItemID)
	if err != nil {
		return err
	}
	if item == nil {
		// Non-quantifiable items (e.g. made-to-order dishes) have no stock row.
		return nil
	}

	available := item.Quantity - item.ReservedQuantity
	oversell := 0
	if quantity > available {
		oversell = quantity - available
		if oversell > quantity {
			oversell = quantity
		}
	}
	return s.inventoryRepo.AdjustQuantities(ctx, item.ID, 0, quantity, oversell)
}

// Release returns reserved stock to the shelf when an order line is
// removed or the order is cancelled.
func (s *InventoryService) Release(ctx context.Context, menuItemID uuid.UUID, quantity int) error {
	item, err := s.inventoryRepo.GetByMenuItemID(ctx, menuItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}

	reservedDelta := -quantity
	if item.ReservedQuantity < quantity {
		reservedDelta = -item.ReservedQuantity
	}
	oversellDelta := 0
	if item.OversellQuantity > 0 {
		oversellDelta = -quantity
		if item.OversellQuantity < quantity {
			oversellDelta = -item.OversellQuantity
		}
	}
	return s.inventoryRepo.AdjustQuantities(ctx, item.ID, 0, reservedDelta, oversellDelta)
}

// Consume turns reserved stock into a completed sale when the covering
// payment succeeds.
func (s *InventoryService) Consume(ctx context.Context, menuItemID uuid.UUID, quantity int) error {
	item, err := s.inventoryRepo.GetByMenuItemID(ctx, menuItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}

	reservedDelta := -quantity
	if item.ReservedQuantity < quantity {
		reservedDelta = -item.ReservedQuantity
	}
	return s.inventoryRepo.AdjustQuantities(ctx, item.ID, -quantity, reservedDelta, 0)
}

// Restock adds received goods to stock (purchase order receipt).
func (s *InventoryService) Restock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return apperror.NewBadRequestError("Restock quantity must be positive")
	}
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Inventory item")
	}

	// Received stock first settles any oversold units.
	oversellDelta := 0
	if item.OversellQuantity > 0 {
		oversellDelta = -quantity
		if item.OversellQuantity < quantity {
			oversellDelta = -item.OversellQuantity
		}
	}
	return s.inventoryRepo.AdjustQuantities(ctx, id, quantity, 0, oversellDelta)
}

func itemName(item *entity.InventoryItem) string {
	if item.MenuItem != nil {
		return item.MenuItem.Name
	}
	return item.MenuItemID.String()
}
