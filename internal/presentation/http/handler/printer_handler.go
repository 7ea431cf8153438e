package handler

import (
	"github.com/dcruzdev/restopos/internal/application/service"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/request"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/response"
	"github.com/dcruzdev/restopos/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PrinterHandler handles receipt printing HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// PrintReceipt handles printing the receipt for a payment
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	receipt, err := h.printerService.PrintPaymentReceipt(c.Request.Context(), paymentID, utils.ToCents(req.ChangeDue))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt printed successfully", receipt)
}

// PreviewReceipt handles rendering a receipt without printing it
func (h *PrinterHandler) PreviewReceipt(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	receipt, err := h.printerService.PreviewPaymentReceipt(c.Request.Context(), paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt preview generated successfully", receipt)
}

// TestPrint handles printing a short test page
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.printerService.TestPrint(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Test page printed successfully", nil)
}

// Status handles reporting the printer connection status
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status retrieved successfully", h.printerService.GetStatus())
}
