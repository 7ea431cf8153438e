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

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders handles listing orders with filters
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Pagination: GetPagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if raw := c.Query("status"); raw != "" {
		status := enum.OrderStatus(raw)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid order status")
			return
		}
		params.Status = &status
	}
	if raw := c.Query("payment_status"); raw != "" {
		status := enum.PaymentStatus(raw)
		params.PaymentStatus = &status
	}
	if raw := c.Query("order_type"); raw != "" {
		orderType := enum.OrderType(raw)
		if !orderType.IsValid() {
			response.BadRequest(c, "Invalid order type")
			return
		}
		params.OrderType = &orderType
	}
	if raw := c.Query("table_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid table ID")
			return
		}
		params.TableID = &id
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		params.EndDate = &t
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// GetOrder handles fetching an order with its items
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

// CreateOrder handles taking a new order
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateOrderInput{
		UserID:          *userID,
		OrderType:       enum.OrderType(req.OrderType),
		OnlineOrderInfo: req.OnlineOrderInfo,
	}
	if req.TableID != nil {
		id, err := uuid.Parse(*req.TableID)
		if err != nil {
			response.BadRequest(c, "Invalid table ID")
			return
		}
		input.TableID = &id
	}
	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		input.CustomerID = &id
	}

	items, err := parseOrderItems(req.Items)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	input.Items = items

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Order created successfully", order)
}

// UpdateItems handles amending line quantities on an open order
func (h *OrderHandler) UpdateItems(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items, err := parseOrderItems(req.Items)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateItems(c.Request.Context(), id, &service.UpdateItemsInput{
		UserID: *userID,
		Items:  items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order updated successfully", order)
}

// Transfer handles moving an order to another table
func (h *OrderHandler) Transfer(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.TransferOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	order, err := h.orderService.Transfer(c.Request.Context(), id, &service.TransferInput{
		UserID:  *userID,
		TableID: tableID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order transferred successfully", order)
}

// UpdateStatus handles advancing the kitchen-facing order status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), *userID, id, enum.OrderStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order status updated successfully", order)
}

// DeleteOrder handles removing an unpaid order
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order deleted successfully", nil)
}

func parseOrderItems(items []request.OrderItemRequest) ([]service.OrderItemInput, error) {
	parsed := make([]service.OrderItemInput, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.MenuItemID)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, service.OrderItemInput{
			MenuItemID: id,
			Quantity:   item.Quantity,
		})
	}
	return parsed, nil
}
