package handler

import (
	"github.com/dcruzdev/restopos/internal/application/service"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/request"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company settings HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// GetSettings handles fetching the company settings
func (h *CompanyHandler) GetSettings(c *gin.Context) {
	settings, err := h.companyService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company settings retrieved successfully", settings)
}

// UpdateSettings handles updating the emitter identity and series
func (h *CompanyHandler) UpdateSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateCompanySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.companyService.UpdateSettings(c.Request.Context(), *userID, &service.UpdateSettingsInput{
		CompanyName:           req.CompanyName,
		TaxRegistrationNumber: req.TaxRegistrationNumber,
		StreetName:            req.StreetName,
		BuildingNumber:        req.BuildingNumber,
		City:                  req.City,
		PostalCode:            req.PostalCode,
		Telephone:             req.Telephone,
		Email:                 req.Email,
		Website:               req.Website,
		InvoiceSeries:         req.InvoiceSeries,
		CreditNoteSeries:      req.CreditNoteSeries,
		ReceiptSeries:         req.ReceiptSeries,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company settings updated successfully", settings)
}
