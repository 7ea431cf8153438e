package repository

import (
	"context"
	"errors"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	domainRepo "github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(item).Error
}

func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := dbFrom(ctx, r.db).WithContext(ctx).Preload("MenuItem").First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryRepository) GetByMenuItemID(ctx context.Context, menuItemID uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := dbFrom(ctx, r.db).WithContext(ctx).Preload("MenuItem").First(&item, "menu_item_id = ?", menuItemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(item).Error
}

func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&entity.InventoryItem{}, "id = ?", id).Error
}

func (r *inventoryRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.InventoryItem, int64, error) {
	var items []entity.InventoryItem
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.InventoryItem{})
	if search != "" {
		query = query.
			Joins("JOIN menu_items ON menu_items.id = inventory_items.menu_item_id").
			Where("menu_items.name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("MenuItem").
		Order("created_at DESC").
		Find(&items).Error

	return items, total, err
}

func (r *inventoryRepository) ListLowStock(ctx context.Context, threshold int) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("quantity <= ?", threshold).
		Preload("MenuItem").
		Order("quantity").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepository) AdjustQuantities(ctx context.Context, id uuid.UUID, quantityDelta, reservedDelta, oversellDelta int) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.InventoryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":          gorm.Expr("quantity + ?", quantityDelta),
			"reserved_quantity": gorm.Expr("reserved_quantity + ?", reservedDelta),
			"oversell_quantity": gorm.Expr("oversell_quantity + ?", oversellDelta),
		}).Error
}
