package repository

import (
	"context"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/google/uuid"
)

// PurchaseOrderRepository defines the interface for purchase order data operations
type PurchaseOrderRepository interface {
	Create(ctx context.Context, purchase *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	GetByPONumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, purchase *entity.PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PurchaseFilterParams) ([]entity.PurchaseOrder, int64, error)
	// GetWithItems loads the purchase order with its lines and supplier.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseStatus) error
	// CountByYear returns how many purchase orders were created in a year,
	// used to allocate the next OC/YYYY/NNNNN number.
	CountByYear(ctx context.Context, year int) (int64, error)
}

// PurchaseFilterParams contains filtering parameters for purchase order queries
type PurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.PurchaseStatus
	SupplierID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// PurchaseOrderItemRepository defines the interface for purchase order line operations
type PurchaseOrderItemRepository interface {
	Create(ctx context.Context, item *entity.PurchaseOrderItem) error
	CreateBatch(ctx context.Context, items []entity.PurchaseOrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrderItem, error)
	GetByPurchaseOrderID(ctx context.Context, purchaseOrderID uuid.UUID) ([]entity.PurchaseOrderItem, error)
	Update(ctx context.Context, item *entity.PurchaseOrderItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
