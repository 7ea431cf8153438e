package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/dcruzdev/restopos/pkg/utils"
	"github.com/google/uuid"
)

// PurchaseService manages purchase orders against suppliers: numbered
// OC/YYYY/NNNNN documents whose goods receipts restock inventory.
type PurchaseService struct {
	purchaseRepo     repository.PurchaseOrderRepository
	purchaseItemRepo repository.PurchaseOrderItemRepository
	supplierRepo     repository.SupplierRepository
	inventoryRepo    repository.InventoryRepository
	inventory        *InventoryService
	audit            *AuditService
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseOrderRepository,
	purchaseItemRepo repository.PurchaseOrderItemRepository,
	supplierRepo repository.SupplierRepository,
	inventoryRepo repository.InventoryRepository,
	inventory *InventoryService,
	audit *AuditService,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:     purchaseRepo,
		purchaseItemRepo: purchaseItemRepo,
		supplierRepo:     supplierRepo,
		inventoryRepo:    inventoryRepo,
		inventory:        inventory,
		audit:            audit,
	}
}

// PurchaseItemInput is one requested purchase line
type PurchaseItemInput struct {
	InventoryItemID uuid.UUID
	Quantity        int
	UnitPrice       float64
}

// CreatePurchaseInput represents the create purchase order input
type CreatePurchaseInput struct {
	UserID               uuid.UUID
	SupplierID           uuid.UUID
	ExpectedDeliveryDate *time.Time
	Notes                string
	Items                []PurchaseItemInput
}

// CreatePurchase creates a draft purchase order with the next sequential
// OC number for the current year.
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.PurchaseOrder, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Purchase order must have at least one item")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	if !supplier.IsActive {
		return nil, apperror.NewConflictError("Supplier is inactive")
	}

	now := time.Now()
	count, err := s.purchaseRepo.CountByYear(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	purchase := &entity.PurchaseOrder{
		PONumber:             fmt.Sprintf("OC/%d/%05d", now.Year(), count+1),
		SupplierID:           input.SupplierID,
		Status:               enum.PurchaseStatusDraft,
		OrderDate:            now,
		ExpectedDeliveryDate: input.ExpectedDeliveryDate,
		Notes:                input.Notes,
		CreatedByID:          &input.UserID,
	}

	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Purchase quantity must be positive")
		}
		if in.UnitPrice < 0 {
			return nil, apperror.NewBadRequestError("Unit price cannot be negative")
		}
		stock, err := s.inventoryRepo.GetByID(ctx, in.InventoryItemID)
		if err != nil {
			return nil, err
		}
		if stock == nil {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Inventory item %s", in.InventoryItemID))
		}
		purchase.Items = append(purchase.Items, entity.PurchaseOrderItem{
			InventoryItemID: in.InventoryItemID,
			QuantityOrdered: in.Quantity,
			UnitPrice:       utils.ToCents(in.UnitPrice),
		})
	}

	purchase.CalculateTotal()
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, input.UserID, enum.AuditActionCreate, "PurchaseOrder", purchase.ID.String(),
		purchase.PONumber, fmt.Sprintf("%d lines", len(purchase.Items)))

	return s.purchaseRepo.GetWithItems(ctx, purchase.ID)
}

// Submit moves a draft purchase order to the supplier.
func (s *PurchaseService) Submit(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.PurchaseOrder, error) {
	purchase, err := s.purchaseRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	if purchase.Status != enum.PurchaseStatusDraft {
		return nil, apperror.NewConflictError("Only draft purchase orders can be submitted")
	}

	if err := s.purchaseRepo.UpdateStatus(ctx, id, enum.PurchaseStatusSubmitted); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "PurchaseOrder", id.String(), purchase.PONumber, "submitted")
	return s.purchaseRepo.GetWithItems(ctx, id)
}

// ReceiveItemInput records delivered units for one purchase line
type ReceiveItemInput struct {
	ItemID   uuid.UUID
	Quantity int
}

// Receive books a goods receipt: received quantities go up, inventory is
// restocked (settling oversell first) and the order status is refreshed.
func (s *PurchaseService) Receive(ctx context.Context, userID uuid.UUID, id uuid.UUID, receipts []ReceiveItemInput) (*entity.PurchaseOrder, error) {
	if len(receipts) == 0 {
		return nil, apperror.NewBadRequestError("Goods receipt must have at least one line")
	}

	purchase, err := s.purchaseRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	switch purchase.Status {
	case enum.PurchaseStatusSubmitted, enum.PurchaseStatusPartiallyReceived:
	default:
		return nil, apperror.NewConflictError("Purchase order is not awaiting delivery")
	}

	lines := make(map[uuid.UUID]*entity.PurchaseOrderItem, len(purchase.Items))
	for i := range purchase.Items {
		lines[purchase.Items[i].ID] = &purchase.Items[i]
	}

	for _, receipt := range receipts {
		line, ok := lines[receipt.ItemID]
		if !ok {
			return nil, apperror.NewBadRequestError("Receipt references a line not on this purchase order")
		}
		outstanding := line.QuantityOrdered - line.ReceivedQuantity
		if receipt.Quantity <= 0 || receipt.Quantity > outstanding {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Receipt quantity for line %s must be between 1 and %d", receipt.ItemID, outstanding))
		}

		line.ReceivedQuantity += receipt.Quantity
		if err := s.purchaseItemRepo.Update(ctx, line); err != nil {
			return nil, err
		}
		if err := s.inventory.Restock(ctx, line.InventoryItemID, receipt.Quantity); err != nil {
			return nil, err
		}
	}

	purchase.RefreshStatus()
	if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "PurchaseOrder", id.String(),
		purchase.PONumber, "goods receipt")
	return s.purchaseRepo.GetWithItems(ctx, id)
}

// UpdateStatus applies the remaining lifecycle transitions: invoiced,
// paid, cancelled. Receipt-driven statuses come from Receive.
func (s *PurchaseService) UpdateStatus(ctx context.Context, userID uuid.UUID, id uuid.UUID, status enum.PurchaseStatus) (*entity.PurchaseOrder, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid purchase status")
	}

	purchase, err := s.purchaseRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	switch status {
	case enum.PurchaseStatusCancelled:
		if purchase.Status == enum.PurchaseStatusReceived || purchase.Status == enum.PurchaseStatusPaid {
			return nil, apperror.NewConflictError("Delivered purchase orders cannot be cancelled")
		}
	case enum.PurchaseStatusInvoiced:
		if purchase.Status != enum.PurchaseStatusReceived {
			return nil, apperror.NewConflictError("Only fully received purchase orders can be invoiced")
		}
	case enum.PurchaseStatusPaid:
		if purchase.Status != enum.PurchaseStatusInvoiced {
			return nil, apperror.NewConflictError("Only invoiced purchase orders can be marked paid")
		}
	default:
		return nil, apperror.NewBadRequestError("Status is managed by the receipt workflow")
	}

	if err := s.purchaseRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "PurchaseOrder", id.String(),
		purchase.PONumber, string(status))
	return s.purchaseRepo.GetWithItems(ctx, id)
}

// DeletePurchase removes a draft purchase order.
func (s *PurchaseService) DeletePurchase(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return apperror.NewNotFoundError("Purchase order")
	}
	if purchase.Status != enum.PurchaseStatusDraft {
		return apperror.NewConflictError("Only draft purchase orders can be deleted")
	}
	if err := s.purchaseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, userID, enum.AuditActionDelete, "PurchaseOrder", id.String(), purchase.PONumber, "")
	return nil
}

func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	purchase, err := s.purchaseRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return purchase, nil
}

func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) ([]entity.PurchaseOrder, int64, error) {
	return s.purchaseRepo.List(ctx, params)
}
