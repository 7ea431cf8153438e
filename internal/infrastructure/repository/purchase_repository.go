package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	domainRepo "github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type purchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *gorm.DB) domainRepo.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, purchase *entity.PurchaseOrder) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(purchase).Error
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var purchase entity.PurchaseOrder
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseOrderRepository) GetByPONumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error) {
	var purchase entity.PurchaseOrder
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&purchase, "po_number = ?", poNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseOrderRepository) Update(ctx context.Context, purchase *entity.PurchaseOrder) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(purchase).Error
}

func (r *purchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&entity.PurchaseOrder{}, "id = ?", id).Error
}

func (r *purchaseOrderRepository) List(ctx context.Context, params *domainRepo.PurchaseFilterParams) ([]entity.PurchaseOrder, int64, error) {
	var purchases []entity.PurchaseOrder
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.PurchaseOrder{})

	if params.Search != "" {
		query = query.Where("po_number ILIKE ?", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}
	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "order_date"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Supplier").
		Order(sortBy + " " + sortOrder).
		Find(&purchases).Error

	return purchases, total, err
}

func (r *purchaseOrderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var purchase entity.PurchaseOrder
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Supplier").
		Preload("Items.InventoryItem.MenuItem").
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseStatus) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *purchaseOrderRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	var count int64
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Unscoped().
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

type purchaseOrderItemRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderItemRepository creates a new purchase order item repository
func NewPurchaseOrderItemRepository(db *gorm.DB) domainRepo.PurchaseOrderItemRepository {
	return &purchaseOrderItemRepository{db: db}
}

func (r *purchaseOrderItemRepository) Create(ctx context.Context, item *entity.PurchaseOrderItem) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(item).Error
}

func (r *purchaseOrderItemRepository) CreateBatch(ctx context.Context, items []entity.PurchaseOrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(&items).Error
}

func (r *purchaseOrderItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrderItem, error) {
	var item entity.PurchaseOrderItem
	err := dbFrom(ctx, r.db).WithContext(ctx).Preload("InventoryItem").First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *purchaseOrderItemRepository) GetByPurchaseOrderID(ctx context.Context, purchaseOrderID uuid.UUID) ([]entity.PurchaseOrderItem, error) {
	var items []entity.PurchaseOrderItem
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("InventoryItem.MenuItem").
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("created_at").
		Find(&items).Error
	return items, err
}

func (r *purchaseOrderItemRepository) Update(ctx context.Context, item *entity.PurchaseOrderItem) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(item).Error
}

func (r *purchaseOrderItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&entity.PurchaseOrderItem{}, "id = ?", id).Error
}
