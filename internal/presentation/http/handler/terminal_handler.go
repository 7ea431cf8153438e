package handler

import (
	"context"

	"github.com/dcruzdev/restopos/internal/application/service"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/request"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TerminalHandler drives the operator's payment session: line selection,
// the keypad, quick-amount presets and the guarded submit.
type TerminalHandler struct {
	terminalService *service.TerminalService
}

// NewTerminalHandler creates a new terminal handler
func NewTerminalHandler(terminalService *service.TerminalService) *TerminalHandler {
	return &TerminalHandler{terminalService: terminalService}
}

// StartSession opens a payment session against an order
func (h *TerminalHandler) StartSession(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.StartTerminalSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	view, err := h.terminalService.StartSession(c.Request.Context(), *userID, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Terminal session started", sessionViewJSON(view))
}

// GetSession returns the current session snapshot
func (h *TerminalHandler) GetSession(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	view, err := h.terminalService.View(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Terminal session retrieved successfully", sessionViewJSON(view))
}

// EndSession discards the operator's session
func (h *TerminalHandler) EndSession(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	h.terminalService.EndSession(*userID)
	response.NoContent(c)
}

// ToggleLine toggles an order line in and out of the selection
func (h *TerminalHandler) ToggleLine(c *gin.Context) {
	h.lineOp(c, func(userID, lineID uuid.UUID, _ int) (*service.SessionView, error) {
		return h.terminalService.ToggleLine(c.Request.Context(), userID, lineID)
	})
}

// SetLineQuantity sets the quantity-to-pay for one order line
func (h *TerminalHandler) SetLineQuantity(c *gin.Context) {
	h.lineOp(c, func(userID, lineID uuid.UUID, quantity int) (*service.SessionView, error) {
		return h.terminalService.SetLineQuantity(c.Request.Context(), userID, lineID, quantity)
	})
}

func (h *TerminalHandler) lineOp(c *gin.Context, op func(userID, lineID uuid.UUID, quantity int) (*service.SessionView, error)) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.TerminalLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	lineID, err := uuid.Parse(req.LineID)
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	view, err := op(*userID, lineID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Selection updated", sessionViewJSON(view))
}

// SelectAll selects every unpaid line
func (h *TerminalHandler) SelectAll(c *gin.Context) {
	h.sessionOp(c, h.terminalService.SelectAll)
}

// SelectNone clears the selection
func (h *TerminalHandler) SelectNone(c *gin.Context) {
	h.sessionOp(c, h.terminalService.SelectNone)
}

func (h *TerminalHandler) sessionOp(c *gin.Context, op func(ctx context.Context, operatorID uuid.UUID) (*service.SessionView, error)) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	view, err := op(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Selection updated", sessionViewJSON(view))
}

// PressKey feeds one keypad key into the amount input
func (h *TerminalHandler) PressKey(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.TerminalKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.terminalService.PressKey(c.Request.Context(), *userID, req.Key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Amount updated", sessionViewJSON(view))
}

// QuickAmount sets the tender to a preset percentage of the payable
func (h *TerminalHandler) QuickAmount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.TerminalQuickAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.terminalService.QuickAmount(c.Request.Context(), *userID, req.Percent)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Amount updated", sessionViewJSON(view))
}

// SetMode switches between selection and manual-amount mode
func (h *TerminalHandler) SetMode(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.TerminalModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.terminalService.SetManualMode(c.Request.Context(), *userID, req.Manual)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Mode updated", sessionViewJSON(view))
}

// Submit sends the session's payment through the guard
func (h *TerminalHandler) Submit(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SubmitTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.terminalService.Submit(c.Request.Context(), *userID, &service.SubmitTerminalInput{
		Method:         enum.PaymentMethod(req.Method),
		InvoiceType:    enum.InvoiceType(req.InvoiceType),
		CustomerName:   req.CustomerName,
		CustomerTaxID:  req.CustomerTaxID,
		ConfirmPartial: req.ConfirmPartial,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment processed successfully", gin.H{
		"payment_id": result.PaymentID,
		"change_due": float64(result.ChangeDue) / 100,
	})
}

func sessionViewJSON(view *service.SessionView) gin.H {
	lines := make([]gin.H, 0, len(view.Lines))
	for _, line := range view.Lines {
		lines = append(lines, gin.H{
			"id":                 line.ID,
			"menu_item_id":       line.MenuItemID,
			"name":               line.Name,
			"unit_price":         float64(line.UnitPrice) / 100,
			"quantity":           line.Quantity,
			"remaining_quantity": line.RemainingQuantity,
			"selected_quantity":  view.Selected[line.ID],
		})
	}
	return gin.H{
		"order_id":       view.OrderID,
		"lines":          lines,
		"subtotal":       float64(view.Totals.Subtotal) / 100,
		"iva":            float64(view.Totals.IVA) / 100,
		"payable":        float64(view.Totals.Payable) / 100,
		"owed":           float64(view.Owed) / 100,
		"entered_amount": view.EnteredAmount,
		"entered_value":  float64(view.EnteredCents) / 100,
		"manual":         view.Manual,
	}
}
