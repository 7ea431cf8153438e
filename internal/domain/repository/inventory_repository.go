package repository

import (
	"context"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/google/uuid"
)

// InventoryRepository defines the interface for inventory data operations
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)
	GetByMenuItemID(ctx context.Context, menuItemID uuid.UUID) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.InventoryItem, int64, error)
	ListLowStock(ctx context.Context, threshold int) ([]entity.InventoryItem, error)
	// AdjustQuantities applies deltas atomically to the stock counters of one item.
	AdjustQuantities(ctx context.Context, id uuid.UUID, quantityDelta, reservedDelta, oversellDelta int) error
}
