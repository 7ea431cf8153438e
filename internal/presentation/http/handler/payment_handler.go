package handler

import (
	"time"

	"github.com/dcruzdev/restopos/internal/application/service"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/request"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/response"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/dcruzdev/restopos/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ProcessPayment handles settling part or all of an order
// @Summary Process Payment
// @Description Settle an order from an item selection or a manual amount
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ProcessPaymentRequest true "Payment data"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /payments [post]
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	input := &service.ProcessPaymentInput{
		UserID:        *userID,
		OrderID:       orderID,
		Manual:        req.Manual,
		Amount:        utils.ToCents(req.Amount),
		Tendered:      utils.ToCents(req.Tendered),
		Method:        enum.PaymentMethod(req.Method),
		InvoiceType:   enum.InvoiceType(req.InvoiceType),
		CustomerName:  req.CustomerName,
		CustomerTaxID: req.CustomerTaxID,
	}
	if len(req.Items) > 0 {
		input.Items = make(map[uuid.UUID]int, len(req.Items))
		for raw, qty := range req.Items {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.BadRequest(c, "Invalid order item ID in selection")
				return
			}
			input.Items[id] = qty
		}
	}

	result, err := h.paymentService.ProcessPayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment processed successfully", gin.H{
		"payment":    result.Payment,
		"change_due": float64(result.ChangeDue) / 100,
	})
}

// GetPayment handles fetching a payment with its covered lines
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment retrieved successfully", payment)
}

// ListPayments handles listing payments with filters
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	params := &repository.PaymentFilterParams{
		Pagination: GetPagination(c),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if raw := c.Query("method"); raw != "" {
		method := enum.PaymentMethod(raw)
		if !method.IsValid() {
			response.BadRequest(c, "Invalid payment method")
			return
		}
		params.Method = &method
	}
	if raw := c.Query("invoice_type"); raw != "" {
		invoiceType := enum.InvoiceType(raw)
		if !invoiceType.IsValid() {
			response.BadRequest(c, "Invalid invoice type")
			return
		}
		params.InvoiceType = &invoiceType
	}
	if raw := c.Query("order_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid order ID")
			return
		}
		params.OrderID = &id
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

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(payments,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}
