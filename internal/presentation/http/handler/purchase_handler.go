package handler

import (
	"time"

	"github.com/dcruzdev/restopos/internal/application/service"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/request"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/response"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PurchaseHandler handles purchase order HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles listing purchase orders
func (h *PurchaseHandler) List(c *gin.Context) {
	params := &repository.PurchaseFilterParams{
		Pagination: GetPagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if status := c.Query("status"); status != "" {
		s := enum.PurchaseStatus(status)
		if !s.IsValid() {
			response.BadRequest(c, "Invalid purchase status")
			return
		}
		params.Status = &s
	}
	if supplier := c.Query("supplier_id"); supplier != "" {
		id, err := uuid.Parse(supplier)
		if err != nil {
			response.BadRequest(c, "Invalid supplier ID")
			return
		}
		params.SupplierID = &id
	}
	if start := c.Query("start_date"); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if end := c.Query("end_date"); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		t = t.Add(24 * time.Hour)
		params.EndDate = &t
	}

	purchases, total, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(purchases, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Purchase orders retrieved successfully", result)
}

// Get handles fetching a single purchase order
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Purchase order retrieved successfully", purchase)
}

// Create handles creating a draft purchase order
func (h *PurchaseHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	items := make([]service.PurchaseItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, err := uuid.Parse(item.InventoryItemID)
		if err != nil {
			response.BadRequest(c, "Invalid inventory item ID")
			return
		}
		items = append(items, service.PurchaseItemInput{
			InventoryItemID: itemID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
		})
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), &service.CreatePurchaseInput{
		UserID:               *userID,
		SupplierID:           supplierID,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		Notes:                req.Notes,
		Items:                items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Purchase order created successfully", purchase)
}

// Submit handles sending a draft purchase order to the supplier
func (h *PurchaseHandler) Submit(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	purchase, err := h.purchaseService.Submit(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Purchase order submitted successfully", purchase)
}

// Receive handles booking a goods receipt against a purchase order
func (h *PurchaseHandler) Receive(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req request.ReceivePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipts := make([]service.ReceiveItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, err := uuid.Parse(item.ItemID)
		if err != nil {
			response.BadRequest(c, "Invalid purchase line ID")
			return
		}
		receipts = append(receipts, service.ReceiveItemInput{ItemID: itemID, Quantity: item.Quantity})
	}

	purchase, err := h.purchaseService.Receive(c.Request.Context(), *userID, id, receipts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Goods receipt recorded successfully", purchase)
}

// UpdateStatus handles purchase order lifecycle transitions
func (h *PurchaseHandler) UpdateStatus(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req request.UpdatePurchaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	purchase, err := h.purchaseService.UpdateStatus(c.Request.Context(), *userID, id, enum.PurchaseStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Purchase order status updated successfully", purchase)
}

// Delete handles removing a draft purchase order
func (h *PurchaseHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Purchase order deleted successfully", nil)
}
