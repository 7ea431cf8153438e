package handler

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/dcruzdev/restopos/internal/application/service"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/request"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FiscalHandler handles fiscal document HTTP requests: credit notes,
// hash chain validation, e-Fatura generation and SAF-T export.
type FiscalHandler struct {
	fiscalService  *service.FiscalService
	efaturaService *service.EFaturaService
	saftService    *service.SAFTService
}

// NewFiscalHandler creates a new fiscal handler
func NewFiscalHandler(
	fiscalService *service.FiscalService,
	efaturaService *service.EFaturaService,
	saftService *service.SAFTService,
) *FiscalHandler {
	return &FiscalHandler{
		fiscalService:  fiscalService,
		efaturaService: efaturaService,
		saftService:    saftService,
	}
}

// CreditNote handles issuing a credit note against a signed document
func (h *FiscalHandler) CreditNote(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	var req request.CreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.fiscalService.CreditNote(c.Request.Context(), &service.CreditNoteInput{
		UserID:    *userID,
		PaymentID: paymentID,
		Reason:    req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Credit note issued successfully", note)
}

// ValidateChain handles recomputing the document hash chain for a period
func (h *FiscalHandler) ValidateChain(c *gin.Context) {
	start, end, err := parsePeriod(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	report, err := h.fiscalService.ValidateChain(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Chain validated", report)
}

// GenerateEFatura handles one-shot e-Fatura XML generation for a payment
func (h *FiscalHandler) GenerateEFatura(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.efaturaService.Generate(c.Request.Context(), *userID, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "e-Fatura document generated successfully", payment)
}

// DownloadEFatura serves the generated e-Fatura XML
func (h *FiscalHandler) DownloadEFatura(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	path, err := h.efaturaService.DocumentPath(c.Request.Context(), paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// EFaturaQRCode serves the document's IUD as a PNG QR code
func (h *FiscalHandler) EFaturaQRCode(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	size := 256
	if raw := c.Query("size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			size = parsed
		}
	}

	png, err := h.efaturaService.QRCode(c.Request.Context(), paymentID, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(200, "image/png", png)
}

// ExportSAFT handles the SAF-T CV audit file export
func (h *FiscalHandler) ExportSAFT(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	start, end, err := parsePeriod(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	path, err := h.saftService.Export(c.Request.Context(), *userID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// parsePeriod reads start/end query params, defaulting to the current month.
func parsePeriod(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return start, end, err
		}
		start = t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return start, end, err
		}
		// Include the whole end day.
		end = t.AddDate(0, 0, 1)
	}
	return start, end, nil
}
