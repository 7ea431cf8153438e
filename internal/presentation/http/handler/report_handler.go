package handler

import (
	"path/filepath"

	"github.com/dcruzdev/restopos/internal/application/service"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles sales reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesSummary handles the aggregated sales summary for a period
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	start, end, err := parsePeriod(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.GetSalesSummary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales summary retrieved successfully", summary)
}

// ExportSales handles exporting the sales report as a spreadsheet
func (h *ReportHandler) ExportSales(c *gin.Context) {
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

	path, err := h.reportService.ExportSalesReport(c.Request.Context(), *userID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
