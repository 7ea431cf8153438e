package service

import (
	"context"
	"fmt"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/dcruzdev/restopos/pkg/utils"
	"github.com/google/uuid"
)

// MenuService handles menu categories and items
type MenuService struct {
	categoryRepo  repository.MenuCategoryRepository
	itemRepo      repository.MenuItemRepository
	inventoryRepo repository.InventoryRepository
	audit         *AuditService
}

// NewMenuService creates a new menu service
func NewMenuService(
	categoryRepo repository.MenuCategoryRepository,
	itemRepo repository.MenuItemRepository,
	inventoryRepo repository.InventoryRepository,
	audit *AuditService,
) *MenuService {
	return &MenuService{
		categoryRepo:  categoryRepo,
		itemRepo:      itemRepo,
		inventoryRepo: inventoryRepo,
		audit:         audit,
	}
}

// CreateCategoryInput represents the category creation input
type CreateCategoryInput struct {
	Name       string
	PreparedIn enum.PreparedIn
}

func (s *MenuService) CreateCategory(ctx context.Context, userID uuid.UUID, input *CreateCategoryInput) (*entity.MenuCategory, error) {
	existing, err := s.categoryRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	preparedIn := input.PreparedIn
	if preparedIn == "" {
		preparedIn = enum.PreparedInBoth
	}
	category := &entity.MenuCategory{Name: input.Name, PreparedIn: preparedIn}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, userID, enum.AuditActionCreate, "MenuCategory", category.ID.String(), category.Name, "")
	return category, nil
}

func (s *MenuService) UpdateCategory(ctx context.Context, userID uuid.UUID, id uuid.UUID, input *CreateCategoryInput) (*entity.MenuCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.PreparedIn != "" {
		if !input.PreparedIn.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid preparation area")
		}
		category.PreparedIn = input.PreparedIn
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "MenuCategory", category.ID.String(), category.Name, "")
	return category, nil
}

func (s *MenuService) DeleteCategory(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	category, err := s.categoryRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	if len(category.Items) > 0 {
		return apperror.NewConflictError("Category still has menu items")
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, userID, enum.AuditActionDelete, "MenuCategory", id.String(), category.Name, "")
	return nil
}

func (s *MenuService) ListCategories(ctx context.Context) ([]entity.MenuCategory, error) {
	return s.categoryRepo.List(ctx)
}

// CreateItemInput represents the menu item creation input
type CreateItemInput struct {
	Name            string
	Description     string
	Ingredients     string
	Price           float64
	CategoryID      uuid.UUID
	Quantifiable    bool
	InitialQuantity int
}

func (s *MenuService) CreateItem(ctx context.Context, userID uuid.UUID, input *CreateItemInput) (*entity.MenuItem, error) {
	if input.Price <= 0 {
		return nil, apperror.NewBadRequestError("Price must be positive")
	}
	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	item := &entity.MenuItem{
		Name:         input.Name,
		Description:  input.Description,
		Ingredients:  input.Ingredients,
		Price:        utils.ToCents(input.Price),
		Availability: true,
		CategoryID:   input.CategoryID,
		Quantifiable: input.Quantifiable,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	// Quantifiable items get a stock row from day one.
	if input.Quantifiable {
		inv := &entity.InventoryItem{MenuItemID: item.ID, Quantity: input.InitialQuantity}
		if err := s.inventoryRepo.Create(ctx, inv); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, userID, enum.AuditActionCreate, "MenuItem", item.ID.String(), item.Name, "")
	return item, nil
}

// UpdateItemInput represents updatable menu item fields
type UpdateItemInput struct {
	Name         *string
	Description  *string
	Ingredients  *string
	Price        *float64
	CategoryID   *uuid.UUID
	Availability *bool
	Quantifiable *bool
}

func (s *MenuService) UpdateItem(ctx context.Context, userID uuid.UUID, id uuid.UUID, input *UpdateItemInput) (*entity.MenuItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	var changes []string
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Ingredients != nil {
		item.Ingredients = *input.Ingredients
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperror.NewBadRequestError("Price must be positive")
		}
		changes = append(changes, fmt.Sprintf("price %.2f -> %.2f", float64(item.Price)/100, *input.Price))
		item.Price = utils.ToCents(*input.Price)
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		item.CategoryID = *input.CategoryID
	}
	if input.Availability != nil {
		item.Availability = *input.Availability
	}
	if input.Quantifiable != nil {
		item.Quantifiable = *input.Quantifiable
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	changeMsg := ""
	if len(changes) > 0 {
		changeMsg = changes[0]
	}
	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "MenuItem", item.ID.String(), item.Name, changeMsg)
	return item, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Menu item")
	}
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, userID, enum.AuditActionDelete, "MenuItem", id.String(), item.Name, "")
	return nil
}

func (s *MenuService) GetItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

func (s *MenuService) ListItems(ctx context.Context, params *repository.MenuItemFilterParams) ([]entity.MenuItem, int64, error) {
	return s.itemRepo.List(ctx, params)
}

// ListAvailableItems returns the orderable menu, optionally limited to one category.
func (s *MenuService) ListAvailableItems(ctx context.Context, categoryID *uuid.UUID) ([]entity.MenuItem, error) {
	return s.itemRepo.ListAvailable(ctx, categoryID)
}
